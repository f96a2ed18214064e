// Package payment talks to the hosted-checkout provider.
package payment

import (
	"context"
	"errors"
)

type LineItem struct {
	Name            string
	Description     string
	Images          []string
	UnitAmountCents int64
	Quantity        int64
}

type SessionRequest struct {
	OrderID    string
	UserID     string
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string `json:"sessionId"`
	URL string `json:"sessionUrl"`
}

// Gateway creates hosted checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	Ping(ctx context.Context) error
}

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

// Event is the part of a provider webhook the storefront acts on.
type Event struct {
	ID        string
	Type      string
	SessionID string
}

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNotConfigured    = errors.New("payment provider not configured")
)
