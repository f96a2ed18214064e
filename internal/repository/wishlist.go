package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	return items, translate(err, "wishlist item")
}

// Add is idempotent: an existing (user, product) row is returned as is.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) (*models.WishlistItem, error) {
	item := models.WishlistItem{UserID: userID, ProductID: productID}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		FirstOrCreate(&item).Error
	if err != nil {
		return nil, translate(err, "wishlist item")
	}
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, translate(err, "wishlist item")
	}
	return &item, nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return translate(res.Error, "wishlist item")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("wishlist item")
	}
	return nil
}
