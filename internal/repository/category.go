package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error
	return cats, translate(err, "category")
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "category")
}

// CategoryCount is a category with the number of products filed under it.
type CategoryCount struct {
	models.Category
	ProductCount int64 `json:"productCount"`
}

func (r *CategoryRepository) FindWithProductCount(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count").
		Order("name ASC").
		Scan(&rows).Error
	return rows, translate(err, "category")
}
