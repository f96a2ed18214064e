package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
	"github.com/Wesley-SdS/modern-ecommerce/internal/utils"
)

type OrderQuery struct {
	UserID string
	Status models.OrderStatus
	Page   int
	Limit  int
}

type OrderList struct {
	Orders     []models.Order        `json:"orders"`
	Pagination repository.Pagination `json:"pagination"`
}

type DashboardStats struct {
	TotalSalesCents      int64 `json:"totalSalesCents"`
	OrderCount           int64 `json:"orderCount"`
	LowStockCount        int64 `json:"lowStockCount"`
	PendingPayablesCents int64 `json:"pendingPayablesCents"`
}

type OrderService struct {
	orders   *repository.OrderRepository
	products *repository.ProductRepository
	accounts *repository.AccountRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		orders:   repository.NewOrderRepository(db),
		products: repository.NewProductRepository(db),
		accounts: repository.NewAccountRepository(db),
	}
}

func (s *OrderService) ListOrders(ctx context.Context, q OrderQuery) (*OrderList, error) {
	switch q.Status {
	case "", models.OrderPending, models.OrderPaid, models.OrderCancelled:
	default:
		return nil, apperr.Validation("invalid order status", nil)
	}

	p := repository.NewPage(q.Page, q.Limit, repository.DefaultLimit)
	orders, total, err := s.orders.FindAll(ctx, repository.OrderFilter{UserID: q.UserID, Status: q.Status, Page: p})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &OrderList{Orders: orders, Pagination: repository.NewPagination(p, total)}, nil
}

// GetOrder returns an order to its owner or to an admin. Other users get a
// not-found so order ids cannot be probed.
func (s *OrderService) GetOrder(ctx context.Context, id string, viewer *models.User) (*models.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer == nil || (o.UserID != viewer.ID && !viewer.Role.IsAdmin()) {
		return nil, apperr.NotFound("order")
	}
	return o, nil
}

func (s *OrderService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	count, paid, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.products.CountLowStock(ctx, utils.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	payables, err := s.accounts.SumPending(ctx, models.Payable)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalSalesCents:      paid,
		OrderCount:           count,
		LowStockCount:        low,
		PendingPayablesCents: payables,
	}, nil
}
