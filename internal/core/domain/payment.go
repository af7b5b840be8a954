package domain

import "time"

// PaymentStatus tracks a top-up from creation to a terminal state.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentExpired   PaymentStatus = "EXPIRED"
)

// Payment is a page top-up handled by the external payment collaborator.
// Reference is the idempotency key: at most one PURCHASE credit exists per reference.
type Payment struct {
	Reference     string        `json:"reference"`
	UserID        string        `json:"userID"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	TransactionID *string       `json:"transactionID,omitempty"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastUpdatedAt time.Time     `json:"lastUpdatedAt"`
}

// IsExpiredAt reports whether a pending payment has passed its expiry.
func (p Payment) IsExpiredAt(now time.Time) bool {
	return p.Status == PaymentPending && !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}

// GatewayPaymentStatus is the provider-side state of a payment.
type GatewayPaymentStatus string

const (
	GatewayPending GatewayPaymentStatus = "PENDING"
	GatewayPaid    GatewayPaymentStatus = "PAID"
	GatewayFailed  GatewayPaymentStatus = "FAILED"
)

// GatewayPayment is what the payment provider knows about a reference.
type GatewayPayment struct {
	Reference string               `json:"reference"`
	Status    GatewayPaymentStatus `json:"status"`
	Amount    int64                `json:"amount"`
}
