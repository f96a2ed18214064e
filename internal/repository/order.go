package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type OrderFilter struct {
	UserID string
	Status models.OrderStatus
	Page   Page
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, "order")
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("User").Preload("AccountEntry").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "order")
	}
	return &o, nil
}

func (r *OrderRepository) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("User").
		First(&o, "payment_intent_id = ?", paymentIntentID).Error
	if err != nil {
		return nil, translate(err, "order")
	}
	return &o, nil
}

func (r *OrderRepository) FindAll(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "order")
	}

	var orders []models.Order
	err := q.Preload("Items").Preload("User").
		Order("created_at DESC").
		Scopes(paginate(f.Page)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translate(err, "order")
	}
	return orders, total, nil
}

func (r *OrderRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	return r.update(ctx, id, "payment_intent_id", paymentIntentID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return r.update(ctx, id, "status", status)
}

func (r *OrderRepository) update(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&models.Order{Base: models.Base{ID: id}}).Update(column, value)
	if res.Error != nil {
		return translate(res.Error, "order")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order")
	}
	return nil
}

// Totals returns the number of orders and the summed total of paid ones.
func (r *OrderRepository) Totals(ctx context.Context) (count int64, paidCents int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, 0, translate(err, "order")
	}
	err = r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderPaid).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&paidCents).Error
	if err != nil {
		return 0, 0, translate(err, "order")
	}
	return count, paidCents, nil
}

// TransitionStatus moves the order to status only if its current status is
// one of from. It reports whether a row changed.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id string, status models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{Base: models.Base{ID: id}}).
		Where("status IN ?", from).
		Update("status", status)
	if res.Error != nil {
		return false, translate(res.Error, "order")
	}
	return res.RowsAffected > 0, nil
}
