package models

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	Base
	UserID          string        `gorm:"index;not null;size:36" json:"userId"`
	User            *User         `json:"user,omitempty"`
	TotalCents      int64         `gorm:"not null" json:"totalCents"`
	Currency        string        `gorm:"size:3;not null" json:"currency"`
	Status          OrderStatus   `gorm:"size:16;not null;index" json:"status"`
	PaymentIntentID *string       `gorm:"uniqueIndex" json:"paymentIntentId,omitempty"` // checkout session id
	Items           []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	AccountEntry    *AccountEntry `gorm:"foreignKey:OrderID" json:"accountEntry,omitempty"`
}

type OrderItem struct {
	Base
	OrderID    string `gorm:"index;not null;size:36" json:"orderId"`
	ProductID  string `gorm:"index;not null;size:36" json:"productId"`
	Title      string `gorm:"not null" json:"title"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	PriceCents int64  `gorm:"not null" json:"priceCents"`
}

// LineTotal is price times quantity for one item.
func (i OrderItem) LineTotal() int64 {
	return i.PriceCents * int64(i.Quantity)
}
