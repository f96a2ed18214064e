package models

type WishlistItem struct {
	Base
	UserID    string   `gorm:"uniqueIndex:idx_wishlist_user_product;not null;size:36" json:"userId"`
	ProductID string   `gorm:"uniqueIndex:idx_wishlist_user_product;not null;size:36" json:"productId"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}
