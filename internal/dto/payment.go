package dto

import (
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// StartTopUpRequest starts a page purchase.
type StartTopUpRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1,max=10000"`
}

// TopUpResponse is the public view of a payment.
type TopUpResponse struct {
	Reference     string    `json:"reference"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transactionID,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// ToTopUpResponse converts a domain.Payment to TopUpResponse DTO.
func ToTopUpResponse(p *domain.Payment) TopUpResponse {
	return TopUpResponse{
		Reference:     p.Reference,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		ExpiresAt:     p.ExpiresAt,
	}
}

// ConfirmPaymentRequest is sent by the payment collaborator once money has been received.
type ConfirmPaymentRequest struct {
	UserID           string `json:"userID" binding:"required"`
	Amount           int64  `json:"amount" binding:"required,min=1"`
	PaymentReference string `json:"paymentReference" binding:"required"`
}
