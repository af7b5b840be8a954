package services

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/dto"
)

// LedgerReaderSvc defines read operations on page balances
type LedgerReaderSvc interface {
	// GetBalance returns the user's current A4-equivalent balance.
	GetBalance(ctx context.Context, userID string) (*domain.PageBalance, error)

	// History returns one page of the user's ledger, newest first.
	History(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.TransactionHistoryResponse, error)
}

// LedgerWriterSvc defines balance-affecting operations
type LedgerWriterSvc interface {
	// Credit appends an ALLOCATE or PURCHASE entry.
	Credit(ctx context.Context, userID string, txnType domain.PageTransactionType, amount int64, note string, createdBy string) (*domain.PageTransaction, error)

	// Debit appends a DEDUCT entry, failing with InsufficientBalanceError if the balance would go negative.
	Debit(ctx context.Context, userID string, amount int64, referenceJobID string, note string, createdBy string) (*domain.PageTransaction, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
