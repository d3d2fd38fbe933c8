package ports

import (
	"context"
	"io"
	"time"

	"github.com/httptim/clientportal/internal/core/domain"
)

// SessionStore is the registry of live session ids. The resolver consults it
// on every request; logout revokes the id, after which the signed token is no
// longer honored.
type SessionStore interface {
	Put(ctx context.Context, sid string, ttl time.Duration) error
	Exists(ctx context.Context, sid string) (bool, error)
	Delete(ctx context.Context, sid string) error
}

// PaymentOrder is the provider's handle for an approved-but-uncaptured order.
type PaymentOrder struct {
	OrderID    string
	ApproveURL string
}

// CaptureResult is the provider's answer to a capture attempt.
type CaptureResult struct {
	Status string // provider status, e.g. "COMPLETED"
}

// Captured reports whether the provider confirmed the payment.
func (r CaptureResult) Captured() bool { return r.Status == "COMPLETED" }

// PaymentProvider is the third-party order API (PayPal in production).
// No retry or reconciliation is layered on top; failures surface as
// domain.ErrUpstream.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, inv *domain.Invoice) (*PaymentOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

// BlobStore stores uploaded files and serves them by URL.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}
