package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

type CreateBannerInput struct {
	Title     string `json:"title" binding:"omitempty,max=200"`
	Subtitle  string `json:"subtitle" binding:"omitempty,max=300"`
	ImageURL  string `json:"imageUrl" binding:"required,url"`
	TargetURL string `json:"targetUrl" binding:"omitempty,url"`
	Position  *int   `json:"position" binding:"omitempty,gte=0"`
	Active    *bool  `json:"active"`
}

type UpdateBannerInput struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	Subtitle  *string `json:"subtitle" binding:"omitempty,max=300"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,url"`
	TargetURL *string `json:"targetUrl" binding:"omitempty,url"`
	Position  *int    `json:"position" binding:"omitempty,gte=0"`
	Active    *bool   `json:"active"`
}

type BannerService struct {
	banners *repository.BannerRepository
}

func NewBannerService(db *gorm.DB) *BannerService {
	return &BannerService{banners: repository.NewBannerRepository(db)}
}

func (s *BannerService) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	banners, err := s.banners.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	return banners, nil
}

func (s *BannerService) GetBanner(ctx context.Context, id string) (*models.Banner, error) {
	return s.banners.FindByID(ctx, id)
}

// CreateBanner stores a new banner. Banners are active unless the input
// says otherwise.
func (s *BannerService) CreateBanner(ctx context.Context, in CreateBannerInput) (*models.Banner, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	b := models.Banner{
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		ImageURL:  in.ImageURL,
		TargetURL: in.TargetURL,
		Active:    true,
	}
	if in.Position != nil {
		b.Position = *in.Position
	}
	if in.Active != nil {
		b.Active = *in.Active
	}

	if err := s.banners.Create(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BannerService) UpdateBanner(ctx context.Context, id string, in UpdateBannerInput) (*models.Banner, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Subtitle != nil {
		fields["subtitle"] = *in.Subtitle
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.TargetURL != nil {
		fields["target_url"] = *in.TargetURL
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}

	if len(fields) == 0 {
		return s.banners.FindByID(ctx, id)
	}
	return s.banners.Update(ctx, id, fields)
}

func (s *BannerService) DeleteBanner(ctx context.Context, id string) error {
	return s.banners.Delete(ctx, id)
}

func (s *BannerService) ToggleBannerActive(ctx context.Context, id string) (*models.Banner, error) {
	return s.banners.ToggleActive(ctx, id)
}
