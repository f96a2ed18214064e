package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
	"github.com/Wesley-SdS/modern-ecommerce/internal/utils"
)

type CreateCategoryInput struct {
	Name     string  `json:"name" binding:"required"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parentId"`
}

type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{categories: repository.NewCategoryRepository(db)}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]repository.CategoryCount, error) {
	return s.categories.FindWithProductCount(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.ParentID != nil && *in.ParentID != "" {
		if _, err := s.categories.FindByID(ctx, *in.ParentID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.NotFound("parent category")
			}
			return nil, err
		}
	} else {
		in.ParentID = nil
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(in.Name)
	}

	cat := models.Category{Name: in.Name, Slug: slug, ParentID: in.ParentID}
	if err := s.categories.Create(ctx, &cat); err != nil {
		return nil, err
	}
	return s.categories.FindByID(ctx, cat.ID)
}
