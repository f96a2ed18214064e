package models

import "gorm.io/gorm"

type Product struct {
	Base
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text;not null" json:"description"`
	PriceCents  int64          `gorm:"not null" json:"priceCents"`
	Currency    string         `gorm:"size:3;not null;default:BRL" json:"currency"`
	SKU         string         `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Stock       int            `gorm:"not null" json:"stock"`
	CategoryID  *string        `gorm:"index;size:36" json:"categoryId"`
	Category    *Category      `json:"category,omitempty"`
	Images      []string       `gorm:"serializer:json;type:text" json:"images"`
	Metadata    map[string]any `gorm:"serializer:json;type:text" json:"metadata,omitempty"`
}

// AfterFind normalizes rows written before images were mandatory.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if p.Images == nil {
		p.Images = []string{}
	}
	return nil
}
