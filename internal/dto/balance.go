package dto

import (
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// BalanceResponse is the current A4-equivalent page balance.
type BalanceResponse struct {
	UserID    string `json:"userID"`
	CurrentA4 int64  `json:"currentA4"`
}

// ToBalanceResponse converts a domain.PageBalance to BalanceResponse DTO.
func ToBalanceResponse(b *domain.PageBalance) BalanceResponse {
	return BalanceResponse{UserID: b.UserID, CurrentA4: b.CurrentA4}
}

// PageTransactionResponse is one ledger entry.
type PageTransactionResponse struct {
	TransactionID    string    `json:"transactionID"`
	Type             string    `json:"type"`
	Delta            int64     `json:"delta"`
	BalanceAfter     int64     `json:"balanceAfter"`
	ReferenceJobID   *string   `json:"referenceJobID,omitempty"`
	PaymentReference *string   `json:"paymentReference,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToPageTransactionResponse converts a domain.PageTransaction to PageTransactionResponse DTO.
func ToPageTransactionResponse(t *domain.PageTransaction) PageTransactionResponse {
	return PageTransactionResponse{
		TransactionID:    t.TransactionID,
		Type:             string(t.Type),
		Delta:            t.Delta,
		BalanceAfter:     t.BalanceAfter,
		ReferenceJobID:   t.ReferenceJobID,
		PaymentReference: t.PaymentReference,
		Note:             t.Note,
		CreatedAt:        t.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for the transaction history.
type ListTransactionsParams struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=20" binding:"min=1,max=100"`
}

// TransactionHistoryResponse is one page of the ledger, newest first.
type TransactionHistoryResponse struct {
	Transactions []PageTransactionResponse `json:"transactions"`
	Page         int                       `json:"page"`
	Size         int                       `json:"size"`
	Total        int64                     `json:"total"`
}

// ToTransactionHistoryResponse builds a history page from domain transactions.
func ToTransactionHistoryResponse(txns []domain.PageTransaction, page, size int, total int64) TransactionHistoryResponse {
	items := make([]PageTransactionResponse, len(txns))
	for i := range txns {
		items[i] = ToPageTransactionResponse(&txns[i])
	}
	return TransactionHistoryResponse{Transactions: items, Page: page, Size: size, Total: total}
}

// AllocatePagesRequest grants quota to a user.
type AllocatePagesRequest struct {
	Amount int64  `json:"amount" binding:"required,min=1"`
	Note   string `json:"note" binding:"max=255"`
}
