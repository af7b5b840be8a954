package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// LedgerReader defines read operations for page ledger data
type LedgerReader interface {
	// FindBalance returns the BalanceAfter and Sequence of the user's latest transaction,
	// or zeros if there is none.
	FindBalance(ctx context.Context, userID string) (balance int64, sequence int64, err error)

	// ListTransactionsByUser retrieves a page of the user's ledger ordered newest first,
	// together with the total number of entries.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.PageTransaction, int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
}
