package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// PaymentReader defines read operations for top-up payments. Writes go through LedgerTx
// so that a payment's status and its credit are committed together.
type PaymentReader interface {
	// FindPaymentByReference retrieves a payment by its reference.
	FindPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error)

	// ListPendingPayments retrieves every payment still waiting for confirmation.
	ListPendingPayments(ctx context.Context) ([]domain.Payment, error)
}
