package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

func TestFinanceEntries(t *testing.T) {
	svc := NewFinanceService(setupTestDB(t))
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	rent, err := svc.CreateEntry(ctx, CreateEntryInput{
		Type: models.Payable, AmountCents: 300000, DueDate: "2024-03-10", Description: "Rent", Category: "Rent",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EntryPending, rent.Status)

	_, err = svc.CreateEntry(ctx, CreateEntryInput{
		Type: models.Payable, AmountCents: 5000, DueDate: "2024-03-01T09:00:00Z", Description: "Internet",
	})
	require.NoError(t, err)

	_, err = svc.CreateEntry(ctx, CreateEntryInput{
		Type: models.Receivable, AmountCents: 800000, DueDate: "2024-03-20", Description: "Wholesale",
	})
	require.NoError(t, err)

	payables, err := svc.ListEntries(ctx, EntryQuery{Type: models.Payable})
	require.NoError(t, err)
	require.Len(t, payables.Entries, 2)
	assert.Equal(t, "Internet", payables.Entries[0].Description, "ordered by due date")

	paid, err := svc.MarkAsPaid(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.True(t, paid.PaidDate.Equal(fixed))

	pending, err := svc.ListEntries(ctx, EntryQuery{Type: models.Payable, Status: models.EntryPending})
	require.NoError(t, err)
	assert.Len(t, pending.Entries, 1)

	cf, err := svc.GetCashFlow(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, int64(800000), cf.Receivables)
	assert.Equal(t, int64(305000), cf.Payables)
	assert.Equal(t, int64(495000), cf.Balance)

	cf, err = svc.GetCashFlow(ctx, "2024-03-01", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, int64(305000), cf.Payables, "a date-only end includes that day")
	assert.Zero(t, cf.Receivables)

	_, err = svc.GetCashFlow(ctx, "2024-04-01", "2024-03-01")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.DeleteEntry(ctx, rent.ID))
	_, err = svc.MarkAsPaid(ctx, rent.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateEntry_Validation(t *testing.T) {
	svc := NewFinanceService(setupTestDB(t))
	ctx := context.Background()

	cases := []CreateEntryInput{
		{Type: models.Payable, AmountCents: 0, DueDate: "2024-01-01", Description: "x"},
		{Type: models.Payable, AmountCents: 10, DueDate: "2024-01-01"},
		{Type: "LOAN", AmountCents: 10, DueDate: "2024-01-01", Description: "x"},
		{Type: models.Payable, AmountCents: 10, DueDate: "tomorrow", Description: "x"},
	}
	for _, in := range cases {
		_, err := svc.CreateEntry(ctx, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "input %+v: %v", in, err)
	}
}
