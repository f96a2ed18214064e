package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

func (r *InventoryRepository) CreateMovement(ctx context.Context, m *models.InventoryMovement) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "inventory movement")
}

func (r *InventoryRepository) FindByProduct(ctx context.Context, productID string, limit int) ([]models.InventoryMovement, error) {
	var ms []models.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	return ms, translate(err, "inventory movement")
}

func (r *InventoryRepository) FindAll(ctx context.Context, p Page) ([]models.InventoryMovement, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryMovement{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "inventory movement")
	}

	var ms []models.InventoryMovement
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Scopes(paginate(p)).
		Find(&ms).Error
	if err != nil {
		return nil, 0, translate(err, "inventory movement")
	}
	return ms, total, nil
}
