package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
)

type checkoutFixture struct {
	db       *gorm.DB
	svc      *CheckoutService
	gateway  *fakeGateway
	notifier *recordingNotifier
	user     models.User
	mouse    models.Product
	monitor  models.Product
}

func setupCheckout(t *testing.T) *checkoutFixture {
	t.Helper()
	gdb := setupTestDB(t)
	f := &checkoutFixture{
		db:       gdb,
		gateway:  &fakeGateway{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewCheckoutService(gdb, f.gateway, f.notifier, "brl")
	f.user = seedUser(t, gdb, "buyer@example.com", models.RoleCustomer)
	f.mouse = seedProduct(t, gdb, "mouse", 2500, 10, nil)
	f.monitor = seedProduct(t, gdb, "monitor", 120000, 2, nil)
	return f
}

func (f *checkoutFixture) checkout(t *testing.T, items ...CheckoutItem) *CheckoutResult {
	t.Helper()
	res, err := f.svc.CreateCheckoutSession(context.Background(), f.user.ID, CheckoutInput{
		Items:      items,
		SuccessURL: "https://shop.example.com/checkout/success",
		CancelURL:  "https://shop.example.com/checkout/cancel",
	})
	require.NoError(t, err)
	return res
}

func TestCreateCheckoutSession_BuildsPendingOrder(t *testing.T) {
	f := setupCheckout(t)

	res := f.checkout(t,
		CheckoutItem{ProductID: f.mouse.ID, Quantity: 2},
		CheckoutItem{ProductID: f.monitor.ID, Quantity: 1},
		CheckoutItem{ProductID: f.mouse.ID, Quantity: 1},
	)

	assert.Equal(t, "cs_test_1", res.SessionID)
	assert.Equal(t, "https://checkout.example.com/cs_test_1", res.SessionURL)

	var order models.Order
	require.NoError(t, f.db.Preload("Items").First(&order, "id = ?", res.OrderID).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "BRL", order.Currency)
	assert.Equal(t, int64(3*2500+120000), order.TotalCents)
	require.NotNil(t, order.PaymentIntentID)
	assert.Equal(t, "cs_test_1", *order.PaymentIntentID)
	require.Len(t, order.Items, 2, "duplicate product lines are merged")

	var sum int64
	for _, it := range order.Items {
		sum += it.LineTotal()
	}
	assert.Equal(t, order.TotalCents, sum)

	req := f.gateway.last
	assert.Equal(t, res.OrderID, req.OrderID)
	assert.Equal(t, f.user.ID, req.UserID)
	assert.Equal(t, "BRL", req.Currency)
	require.Len(t, req.LineItems, 2)
	assert.Equal(t, "mouse", req.LineItems[0].Name)
	assert.Equal(t, int64(3), req.LineItems[0].Quantity)
	assert.Equal(t, int64(2500), req.LineItems[0].UnitAmountCents)
	assert.Equal(t, []string{"https://cdn.example.com/mouse.jpg"}, req.LineItems[0].Images)
}

func TestCreateCheckoutSession_Rejections(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	urls := CheckoutInput{SuccessURL: "https://s.example.com", CancelURL: "https://c.example.com"}

	in := urls
	in.Items = []CheckoutItem{{ProductID: "ghost", Quantity: 1}}
	_, err := f.svc.CreateCheckoutSession(ctx, f.user.ID, in)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

	in.Items = []CheckoutItem{{ProductID: f.monitor.ID, Quantity: 3}}
	_, err = f.svc.CreateCheckoutSession(ctx, f.user.ID, in)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
	assert.ErrorContains(t, err, "monitor")

	in.Items = []CheckoutItem{{ProductID: f.mouse.ID, Quantity: 0}}
	_, err = f.svc.CreateCheckoutSession(ctx, f.user.ID, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.CreateCheckoutSession(ctx, f.user.ID, CheckoutInput{
		Items:      []CheckoutItem{{ProductID: f.mouse.ID, Quantity: 1}},
		SuccessURL: "not a url",
		CancelURL:  "https://c.example.com",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var n int64
	f.db.Model(&models.Order{}).Count(&n)
	assert.Zero(t, n, "rejected checkouts must not create orders")
	assert.Zero(t, f.gateway.calls)
}

func TestCreateCheckoutSession_GatewayFailureCancelsOrder(t *testing.T) {
	f := setupCheckout(t)
	f.gateway.err = errors.New("card network down")

	_, err := f.svc.CreateCheckoutSession(context.Background(), f.user.ID, CheckoutInput{
		Items:      []CheckoutItem{{ProductID: f.mouse.ID, Quantity: 1}},
		SuccessURL: "https://s.example.com",
		CancelURL:  "https://c.example.com",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	var order models.Order
	require.NoError(t, f.db.First(&order).Error)
	assert.Equal(t, models.OrderCancelled, order.Status)
}

func TestCreateCheckoutSession_NoGateway(t *testing.T) {
	f := setupCheckout(t)
	svc := NewCheckoutService(f.db, nil, nil, "")

	_, err := svc.CreateCheckoutSession(context.Background(), f.user.ID, CheckoutInput{
		Items:      []CheckoutItem{{ProductID: f.mouse.ID, Quantity: 1}},
		SuccessURL: "https://s.example.com",
		CancelURL:  "https://c.example.com",
	})
	assert.ErrorIs(t, err, payment.ErrNotConfigured)
}

func TestHandlePaymentSuccess_IsIdempotent(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	res := f.checkout(t,
		CheckoutItem{ProductID: f.mouse.ID, Quantity: 4},
		CheckoutItem{ProductID: f.monitor.ID, Quantity: 1},
	)

	order, err := f.svc.HandlePaymentSuccess(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status)

	_, err = f.svc.HandlePaymentSuccess(ctx, res.SessionID)
	require.NoError(t, err)
	f.svc.Wait()

	var mouse, monitor models.Product
	require.NoError(t, f.db.First(&mouse, "id = ?", f.mouse.ID).Error)
	require.NoError(t, f.db.First(&monitor, "id = ?", f.monitor.ID).Error)
	assert.Equal(t, 6, mouse.Stock)
	assert.Equal(t, 1, monitor.Stock)

	var sales []models.InventoryMovement
	require.NoError(t, f.db.Where("type = ?", models.MovementSale).Find(&sales).Error)
	require.Len(t, sales, 2)
	for _, m := range sales {
		assert.Equal(t, "Order "+res.OrderID, m.Note)
		assert.Less(t, m.Quantity, 0)
	}

	var entries []models.AccountEntry
	require.NoError(t, f.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, models.Receivable, e.Type)
	assert.Equal(t, models.EntryPaid, e.Status)
	assert.Equal(t, int64(4*2500+120000), e.AmountCents)
	assert.Equal(t, "Payment for order "+res.OrderID, e.Description)
	require.NotNil(t, e.OrderID)
	assert.Equal(t, res.OrderID, *e.OrderID)
	assert.NotNil(t, e.PaidDate)

	require.Equal(t, 1, f.notifier.count())
	notice := f.notifier.notices[0]
	assert.Equal(t, res.OrderID, notice.OrderID)
	assert.Equal(t, "buyer@example.com", notice.Email)
	assert.Equal(t, "BRL", notice.Currency)
}

func TestHandlePaymentSuccess_OversellIsRecorded(t *testing.T) {
	f := setupCheckout(t)
	res := f.checkout(t, CheckoutItem{ProductID: f.monitor.ID, Quantity: 2})

	// stock sold elsewhere between checkout and payment
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", f.monitor.ID).Update("stock", 1).Error)

	_, err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID)
	require.NoError(t, err)
	f.svc.Wait()

	var monitor models.Product
	require.NoError(t, f.db.First(&monitor, "id = ?", f.monitor.ID).Error)
	assert.Equal(t, -1, monitor.Stock)
}

func TestHandlePaymentSuccess_UnknownSession(t *testing.T) {
	f := setupCheckout(t)
	_, err := f.svc.HandlePaymentSuccess(context.Background(), "cs_unknown")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestHandlePaymentExpired(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	res := f.checkout(t, CheckoutItem{ProductID: f.mouse.ID, Quantity: 1})

	order, err := f.svc.HandlePaymentExpired(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)

	paid := f.checkout(t, CheckoutItem{ProductID: f.mouse.ID, Quantity: 1})
	_, err = f.svc.HandlePaymentSuccess(ctx, paid.SessionID)
	require.NoError(t, err)
	f.svc.Wait()

	order, err = f.svc.HandlePaymentExpired(ctx, paid.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status, "paid orders are never cancelled")
}

func TestHandleEvent_Dispatch(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	res := f.checkout(t, CheckoutItem{ProductID: f.mouse.ID, Quantity: 1})

	require.NoError(t, f.svc.HandleEvent(ctx, payment.Event{ID: "evt_1", Type: "payment_intent.succeeded"}))
	require.NoError(t, f.svc.HandleEvent(ctx, payment.Event{ID: "evt_2", Type: payment.EventCheckoutCompleted, SessionID: res.SessionID}))
	f.svc.Wait()

	var order models.Order
	require.NoError(t, f.db.First(&order, "id = ?", res.OrderID).Error)
	assert.Equal(t, models.OrderPaid, order.Status)

	err := f.svc.HandleEvent(ctx, payment.Event{Type: payment.EventCheckoutExpired, SessionID: "cs_missing"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
