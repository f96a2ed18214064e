package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type AccountFilter struct {
	Type   models.AccountEntryType
	Status models.AccountEntryStatus
	Page   Page
}

type CashFlow struct {
	Receivables int64 `json:"receivables"`
	Payables    int64 `json:"payables"`
	Balance     int64 `json:"balance"`
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{db: tx}
}

func (r *AccountRepository) Create(ctx context.Context, e *models.AccountEntry) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "account entry")
}

func (r *AccountRepository) FindAll(ctx context.Context, f AccountFilter) ([]models.AccountEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AccountEntry{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "account entry")
	}

	var entries []models.AccountEntry
	if err := q.Order("due_date ASC").Scopes(paginate(f.Page)).Find(&entries).Error; err != nil {
		return nil, 0, translate(err, "account entry")
	}
	return entries, total, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.AccountEntry, error) {
	var e models.AccountEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err, "account entry")
	}
	return &e, nil
}

func (r *AccountRepository) MarkAsPaid(ctx context.Context, id string, paidDate time.Time) (*models.AccountEntry, error) {
	res := r.db.WithContext(ctx).
		Model(&models.AccountEntry{Base: models.Base{ID: id}}).
		Updates(map[string]any{"status": models.EntryPaid, "paid_date": paidDate})
	if res.Error != nil {
		return nil, translate(res.Error, "account entry")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("account entry")
	}
	return r.FindByID(ctx, id)
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.AccountEntry{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "account entry")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account entry")
	}
	return nil
}

// CashFlow sums entries due within [start, end], regardless of status.
func (r *AccountRepository) CashFlow(ctx context.Context, start, end time.Time) (CashFlow, error) {
	var rows []struct {
		Type  models.AccountEntryType
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.AccountEntry{}).
		Select("type, COALESCE(SUM(amount_cents), 0) AS total").
		Where("due_date >= ? AND due_date <= ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return CashFlow{}, translate(err, "account entry")
	}

	var cf CashFlow
	for _, row := range rows {
		switch row.Type {
		case models.Receivable:
			cf.Receivables = row.Total
		case models.Payable:
			cf.Payables = row.Total
		}
	}
	cf.Balance = cf.Receivables - cf.Payables
	return cf, nil
}

func (r *AccountRepository) SumPending(ctx context.Context, t models.AccountEntryType) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.AccountEntry{}).
		Where("type = ? AND status = ?", t, models.EntryPending).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	return sum, translate(err, "account entry")
}
