package models

import "time"

type AccountEntryType string

const (
	Receivable AccountEntryType = "RECEIVABLE"
	Payable    AccountEntryType = "PAYABLE"
)

func (t AccountEntryType) Valid() bool {
	return t == Receivable || t == Payable
}

type AccountEntryStatus string

const (
	EntryPending AccountEntryStatus = "PENDING"
	EntryPaid    AccountEntryStatus = "PAID"
)

type AccountEntry struct {
	Base
	Type        AccountEntryType   `gorm:"size:16;not null;index" json:"type"`
	AmountCents int64              `gorm:"not null" json:"amountCents"`
	DueDate     time.Time          `gorm:"not null;index" json:"dueDate"`
	PaidDate    *time.Time         `json:"paidDate,omitempty"`
	Status      AccountEntryStatus `gorm:"size:16;not null;index" json:"status"`
	Description string             `gorm:"not null" json:"description"`
	Category    string             `json:"category,omitempty"`
	OrderID     *string            `gorm:"uniqueIndex;size:36" json:"orderId,omitempty"`
}

// FinancialCategories are the labels the back-office offers for entries.
var FinancialCategories = []string{
	"Rent", "Utilities", "Supplies", "Marketing", "Salaries", "Sales", "Services", "Other",
}
