// Package notifier tells customers about their orders.
package notifier

import (
	"context"
	"errors"
)

// OrderNotice is what a customer is told once an order is paid.
type OrderNotice struct {
	OrderID      string
	CustomerName string
	Email        string
	Phone        string
	TotalCents   int64
	Currency     string
}

type Notifier interface {
	NotifyOrderPaid(ctx context.Context, n OrderNotice) error
}

// Multi fans a notice out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyOrderPaid(ctx context.Context, n OrderNotice) error {
	var errs []error
	for _, nt := range m {
		if err := nt.NotifyOrderPaid(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) NotifyOrderPaid(context.Context, OrderNotice) error { return nil }
