package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var banners []models.Banner
	err := q.Order("position ASC").Find(&banners).Error
	return banners, translate(err, "banner")
}

func (r *BannerRepository) FindByID(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err, "banner")
	}
	return &b, nil
}

func (r *BannerRepository) Create(ctx context.Context, b *models.Banner) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, "banner")
}

func (r *BannerRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Banner, error) {
	res := r.db.WithContext(ctx).Model(&models.Banner{Base: models.Base{ID: id}}).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error, "banner")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("banner")
	}
	return r.FindByID(ctx, id)
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "banner")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("banner")
	}
	return nil
}

// ToggleActive flips the active flag in a single statement.
func (r *BannerRepository) ToggleActive(ctx context.Context, id string) (*models.Banner, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Banner{Base: models.Base{ID: id}}).
		UpdateColumn("active", gorm.Expr("NOT active"))
	if res.Error != nil {
		return nil, translate(res.Error, "banner")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("banner")
	}
	return r.FindByID(ctx, id)
}
