package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/db"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newProduct(slug string, stock int) *models.Product {
	return &models.Product{
		Title:       slug,
		Slug:        slug,
		Description: "d",
		PriceCents:  1000,
		Currency:    "BRL",
		SKU:         "SKU-" + slug,
		Stock:       stock,
	}
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: DefaultLimit}, NewPage(0, 0, DefaultLimit))
	assert.Equal(t, Page{Page: 3, Limit: MaxLimit}, NewPage(3, 1000, DefaultLimit))
	assert.Equal(t, 40, NewPage(3, 20, DefaultLimit).Offset())

	p := NewPagination(Page{Page: 1, Limit: 20}, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPagination(Page{Page: 1, Limit: 20}, 0).TotalPages)
}

func TestProductRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, newProduct("mouse", 1)))

	err := repo.Create(ctx, newProduct("mouse", 1))
	assert.True(t, apperr.Is(err, apperr.KindConflict), "duplicate slug: %v", err)

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.EqualError(t, err, "product not found")

	assert.True(t, apperr.Is(repo.Delete(ctx, "missing"), apperr.KindNotFound))
}

func TestIncrementStock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))
	p := newProduct("mouse", 3)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.IncrementStock(ctx, p.ID, -2, false)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	_, err = repo.IncrementStock(ctx, p.ID, -2, false)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	got, err = repo.IncrementStock(ctx, p.ID, -2, true)
	require.NoError(t, err)
	assert.Equal(t, -1, got.Stock)

	_, err = repo.IncrementStock(ctx, "missing", 1, false)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProductUpdateKeepsSerializedColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))
	p := newProduct("lamp", 1)
	p.Images = []string{"/a.png"}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Update(ctx, p.ID, &models.Product{Images: []string{"/b.png", "/c.png"}}, "images")
	require.NoError(t, err)
	assert.Equal(t, []string{"/b.png", "/c.png"}, got.Images)
	assert.Equal(t, "lamp", got.Title)
}

func TestOrderTransitionStatus(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	u := models.User{Name: "u", Email: "u@example.com", Role: models.RoleCustomer}
	require.NoError(t, gdb.Create(&u).Error)

	repo := NewOrderRepository(gdb)
	o := models.Order{UserID: u.ID, TotalCents: 100, Currency: "BRL", Status: models.OrderPending}
	require.NoError(t, repo.Create(ctx, &o))
	require.NoError(t, repo.SetPaymentIntent(ctx, o.ID, "cs_1"))

	ok, err := repo.TransitionStatus(ctx, o.ID, models.OrderPaid, models.OrderPending)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, o.ID, models.OrderCancelled, models.OrderPending)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByPaymentIntent(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, found.Status)
}

func TestAccountCashFlow(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(setupTestDB(t))
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	entries := []models.AccountEntry{
		{Type: models.Receivable, AmountCents: 5000, DueDate: day, Status: models.EntryPaid, Description: "sale"},
		{Type: models.Payable, AmountCents: 2000, DueDate: day, Status: models.EntryPending, Description: "rent"},
		{Type: models.Payable, AmountCents: 9999, DueDate: day.AddDate(0, 2, 0), Status: models.EntryPending, Description: "later"},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	cf, err := repo.CashFlow(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, CashFlow{Receivables: 5000, Payables: 2000, Balance: 3000}, cf)

	pending, err := repo.SumPending(ctx, models.Payable)
	require.NoError(t, err)
	assert.Equal(t, int64(11999), pending)
}
