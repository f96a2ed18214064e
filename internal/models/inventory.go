package models

type MovementType string

const (
	MovementAdd    MovementType = "ADD"
	MovementAdjust MovementType = "ADJUST"
	MovementSale   MovementType = "SALE"
)

type InventoryMovement struct {
	Base
	ProductID string       `gorm:"index;not null;size:36" json:"productId"`
	Product   *Product     `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Type      MovementType `gorm:"size:16;not null" json:"type"`
	Quantity  int          `gorm:"not null" json:"quantity"` // signed
	Note      string       `json:"note,omitempty"`
}
