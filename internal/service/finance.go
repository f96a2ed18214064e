package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

// CreateEntryInput accepts dueDate as RFC 3339 or as a plain 2006-01-02 date.
type CreateEntryInput struct {
	Type        models.AccountEntryType `json:"type" binding:"required,oneof=RECEIVABLE PAYABLE"`
	AmountCents int64                   `json:"amountCents" binding:"required,gt=0"`
	DueDate     string                  `json:"dueDate" binding:"required"`
	Description string                  `json:"description" binding:"required"`
	Category    string                  `json:"category"`
	OrderID     *string                 `json:"relatedOrderId"`
}

type EntryQuery struct {
	Type   models.AccountEntryType
	Status models.AccountEntryStatus
	Page   int
	Limit  int
}

type EntryList struct {
	Entries    []models.AccountEntry `json:"entries"`
	Pagination repository.Pagination `json:"pagination"`
}

type FinanceService struct {
	accounts *repository.AccountRepository
	now      func() time.Time
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{accounts: repository.NewAccountRepository(db), now: time.Now}
}

func (s *FinanceService) CreateEntry(ctx context.Context, in CreateEntryInput) (*models.AccountEntry, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	due, err := ParseDate(in.DueDate)
	if err != nil {
		return nil, apperr.Validation("validation error", []FieldError{{Field: "dueDate", Message: "invalid date"}})
	}

	e := models.AccountEntry{
		Type:        in.Type,
		AmountCents: in.AmountCents,
		DueDate:     due,
		Status:      models.EntryPending,
		Description: in.Description,
		Category:    in.Category,
	}
	if in.OrderID != nil && *in.OrderID != "" {
		e.OrderID = in.OrderID
	}

	if err := s.accounts.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *FinanceService) ListEntries(ctx context.Context, q EntryQuery) (*EntryList, error) {
	if q.Type != "" && !q.Type.Valid() {
		return nil, apperr.Validation("invalid entry type", nil)
	}
	p := repository.NewPage(q.Page, q.Limit, repository.DefaultLimit)

	entries, total, err := s.accounts.FindAll(ctx, repository.AccountFilter{Type: q.Type, Status: q.Status, Page: p})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.AccountEntry{}
	}
	return &EntryList{Entries: entries, Pagination: repository.NewPagination(p, total)}, nil
}

func (s *FinanceService) MarkAsPaid(ctx context.Context, id string) (*models.AccountEntry, error) {
	return s.accounts.MarkAsPaid(ctx, id, s.now())
}

func (s *FinanceService) DeleteEntry(ctx context.Context, id string) error {
	return s.accounts.Delete(ctx, id)
}

// GetCashFlow sums entries due in [start, end]. Empty bounds default to the
// last 30 days; a date-only end covers that whole day.
func (s *FinanceService) GetCashFlow(ctx context.Context, start, end string) (*repository.CashFlow, error) {
	now := s.now()
	to := now
	from := now.AddDate(0, 0, -30)

	if end != "" {
		t, err := ParseDate(end)
		if err != nil {
			return nil, apperr.Validation("invalid end date", nil)
		}
		if !strings.Contains(end, "T") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = t
	}
	if start != "" {
		t, err := ParseDate(start)
		if err != nil {
			return nil, apperr.Validation("invalid start date", nil)
		}
		from = t
	}
	if from.After(to) {
		return nil, apperr.Validation("start date is after end date", nil)
	}

	cf, err := s.accounts.CashFlow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

// ParseDate accepts RFC 3339 timestamps and 2006-01-02 dates (UTC).
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}
