package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/notifier"
	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutInput struct {
	Items      []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	SuccessURL string         `json:"successUrl" binding:"required,url"`
	CancelURL  string         `json:"cancelUrl" binding:"required,url"`
}

type CheckoutResult struct {
	SessionID  string `json:"sessionId"`
	SessionURL string `json:"sessionUrl"`
	OrderID    string `json:"orderId"`
}

type CheckoutService struct {
	db        *gorm.DB
	products  *repository.ProductRepository
	orders    *repository.OrderRepository
	inventory *repository.InventoryRepository
	accounts  *repository.AccountRepository

	gateway  payment.Gateway
	notifier notifier.Notifier
	currency string

	// NotifyTimeout bounds each asynchronous customer notification.
	NotifyTimeout time.Duration

	wg sync.WaitGroup
}

// NewCheckoutService wires the checkout flow. gateway may be nil when no
// payment provider is configured; n may be nil to skip notifications.
func NewCheckoutService(db *gorm.DB, gateway payment.Gateway, n notifier.Notifier, currency string) *CheckoutService {
	if n == nil {
		n = notifier.Nop{}
	}
	if currency == "" {
		currency = "BRL"
	}
	return &CheckoutService{
		db:            db,
		products:      repository.NewProductRepository(db),
		orders:        repository.NewOrderRepository(db),
		inventory:     repository.NewInventoryRepository(db),
		accounts:      repository.NewAccountRepository(db),
		gateway:       gateway,
		notifier:      n,
		currency:      strings.ToUpper(currency),
		NotifyTimeout: 30 * time.Second,
	}
}

// mergeItems folds repeated product ids into one line, keeping first-seen
// order.
func mergeItems(items []CheckoutItem) []CheckoutItem {
	out := make([]CheckoutItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out
}

// CreateCheckoutSession prices the items from the catalog, stores a PENDING
// order and opens a hosted checkout session for it.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID string, in CheckoutInput) (*CheckoutResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, apperr.Wrap(payment.ErrNotConfigured, "checkout unavailable")
	}

	items := mergeItems(in.Items)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:   userID,
		Currency: s.currency,
		Status:   models.OrderPending,
	}
	lineItems := make([]payment.LineItem, 0, len(items))

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, apperr.NotFound("product " + it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, apperr.Conflictf("insufficient stock for %s", p.Title)
		}

		oi := models.OrderItem{
			ProductID:  p.ID,
			Title:      p.Title,
			Quantity:   it.Quantity,
			PriceCents: p.PriceCents,
		}
		order.Items = append(order.Items, oi)
		order.TotalCents += oi.LineTotal()

		lineItems = append(lineItems, payment.LineItem{
			Name:            p.Title,
			Description:     p.Description,
			Images:          absoluteImages(p.Images),
			UnitAmountCents: p.PriceCents,
			Quantity:        int64(it.Quantity),
		})
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.SessionRequest{
		OrderID:    order.ID,
		UserID:     userID,
		Currency:   s.currency,
		LineItems:  lineItems,
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
	})
	if err != nil {
		if uerr := s.orders.UpdateStatus(ctx, order.ID, models.OrderCancelled); uerr != nil {
			log.Error().Err(uerr).Str("order_id", order.ID).Msg("cancel order after failed checkout session")
		}
		return nil, apperr.Wrap(err, "create checkout session")
	}

	if err := s.orders.SetPaymentIntent(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID).
		Str("session_id", session.ID).
		Int64("total_cents", order.TotalCents).
		Msg("checkout session created")

	return &CheckoutResult{SessionID: session.ID, SessionURL: session.URL, OrderID: order.ID}, nil
}

// absoluteImages keeps only images the provider can fetch.
func absoluteImages(images []string) []string {
	var out []string
	for _, img := range images {
		if strings.HasPrefix(img, "https://") || strings.HasPrefix(img, "http://") {
			out = append(out, img)
		}
	}
	return out
}

// HandlePaymentSuccess marks the order behind a checkout session as paid,
// books the sale against stock and records the receivable. Repeated calls
// for a paid order are no-ops.
func (s *CheckoutService) HandlePaymentSuccess(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := s.orders.FindByPaymentIntent(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderPaid {
		return order, nil
	}

	var changed bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		products := s.products.WithTx(tx)
		inventory := s.inventory.WithTx(tx)

		ok, err := orders.TransitionStatus(ctx, order.ID, models.OrderPaid, models.OrderPending, models.OrderCancelled)
		if err != nil || !ok {
			return err
		}
		changed = true

		for _, it := range order.Items {
			p, err := products.IncrementStock(ctx, it.ProductID, -it.Quantity, true)
			if apperr.Is(err, apperr.KindNotFound) {
				log.Warn().Str("order_id", order.ID).Str("product_id", it.ProductID).Msg("sold product no longer exists")
				continue
			}
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", it.ProductID, err)
			}
			if p.Stock < 0 {
				log.Warn().
					Str("order_id", order.ID).
					Str("product_id", p.ID).
					Int("stock", p.Stock).
					Msg("product oversold")
			}

			err = inventory.CreateMovement(ctx, &models.InventoryMovement{
				ProductID: it.ProductID,
				Type:      models.MovementSale,
				Quantity:  -it.Quantity,
				Note:      "Order " + order.ID,
			})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		orderID := order.ID
		return s.accounts.WithTx(tx).Create(ctx, &models.AccountEntry{
			Type:        models.Receivable,
			AmountCents: order.TotalCents,
			DueDate:     now,
			PaidDate:    &now,
			Status:      models.EntryPaid,
			Description: "Payment for order " + order.ID,
			Category:    "Sales",
			OrderID:     &orderID,
		})
	})
	if err != nil {
		return nil, apperr.Wrap(err, "confirm payment")
	}

	order.Status = models.OrderPaid
	if changed {
		log.Info().Str("order_id", order.ID).Int64("total_cents", order.TotalCents).Msg("order paid")
		s.notifyPaid(order)
	}
	return order, nil
}

// HandlePaymentExpired cancels the order of an abandoned checkout session.
func (s *CheckoutService) HandlePaymentExpired(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := s.orders.FindByPaymentIntent(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.orders.TransitionStatus(ctx, order.ID, models.OrderCancelled, models.OrderPending)
	if err != nil {
		return nil, err
	}
	if ok {
		order.Status = models.OrderCancelled
		log.Info().Str("order_id", order.ID).Msg("order cancelled after checkout expired")
	}
	return order, nil
}

// HandleEvent dispatches a verified webhook event. Event types the
// storefront does not act on are accepted and ignored.
func (s *CheckoutService) HandleEvent(ctx context.Context, ev payment.Event) error {
	switch ev.Type {
	case payment.EventCheckoutCompleted:
		_, err := s.HandlePaymentSuccess(ctx, ev.SessionID)
		return err
	case payment.EventCheckoutExpired:
		_, err := s.HandlePaymentExpired(ctx, ev.SessionID)
		return err
	}
	log.Debug().Str("event_id", ev.ID).Str("type", ev.Type).Msg("webhook event ignored")
	return nil
}

func (s *CheckoutService) notifyPaid(order *models.Order) {
	if order.User == nil {
		return
	}
	n := notifier.OrderNotice{
		OrderID:      order.ID,
		CustomerName: order.User.Name,
		Email:        order.User.Email,
		Phone:        order.User.Phone,
		TotalCents:   order.TotalCents,
		Currency:     order.Currency,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.NotifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyOrderPaid(ctx, n); err != nil {
			log.Error().Err(err).Str("order_id", n.OrderID).Msg("order notification failed")
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *CheckoutService) Wait() {
	s.wg.Wait()
}
