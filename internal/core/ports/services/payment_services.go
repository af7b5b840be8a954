package services

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// PaymentSvc handles page top-ups produced by the payment collaborator.
type PaymentSvc interface {
	// StartTopUp records a pending payment and starts watching it.
	StartTopUp(ctx context.Context, session domain.Session, amount int64) (*domain.Payment, error)

	// CancelTopUp abandons a pending payment.
	CancelTopUp(ctx context.Context, session domain.Session, reference string) (*domain.Payment, error)

	// ConfirmPayment credits the payment's pages exactly once per reference.
	ConfirmPayment(ctx context.Context, userID string, amount int64, reference string) (*domain.PageTransaction, error)

	// GetTopUp retrieves one of the caller's payments.
	GetTopUp(ctx context.Context, session domain.Session, reference string) (*domain.Payment, error)

	// ExpirePayment marks a pending payment EXPIRED once its deadline has passed.
	ExpirePayment(ctx context.Context, userID string, reference string) (*domain.Payment, error)

	// ResumePending restarts gateway polling for payments left pending by a previous process.
	ResumePending(ctx context.Context) error

	// Close stops all polling tasks and waits for them to exit.
	Close()
}

// PaymentGateway reports the state of a payment at the external provider.
type PaymentGateway interface {
	CheckPayment(ctx context.Context, reference string) (*domain.GatewayPayment, error)
}

// EventSink receives product analytics events. Implementations must not block.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
