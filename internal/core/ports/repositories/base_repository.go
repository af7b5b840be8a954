package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// LedgerTx is the view of the store available inside a per-user unit of work.
// Every write made through it becomes visible together when the unit of work
// commits, or not at all.
type LedgerTx interface {
	// CurrentBalance returns the BalanceAfter of the user's latest transaction, or 0.
	CurrentBalance(ctx context.Context, userID string) (int64, error)

	// AppendTransaction appends an entry to the user's ledger and assigns its Sequence.
	AppendTransaction(ctx context.Context, txn *domain.PageTransaction) error

	// FindTransactionByID retrieves a ledger entry by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.PageTransaction, error)

	// CreatePrintJobs inserts the jobs of an accepted batch.
	CreatePrintJobs(ctx context.Context, jobs []domain.PrintJob) error

	// FindPrintJob retrieves a job for modification.
	FindPrintJob(ctx context.Context, jobID string) (*domain.PrintJob, error)

	// UpdatePrintJobStatus persists the status, completion time and error message of a job.
	UpdatePrintJobStatus(ctx context.Context, job domain.PrintJob) error

	// FindPayment retrieves a payment by its reference.
	FindPayment(ctx context.Context, reference string) (*domain.Payment, error)

	// SavePayment inserts or updates a payment.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// UnitOfWork serializes all balance-affecting writes of a single user.
type UnitOfWork interface {
	// WithinUserLock runs fn while holding the user's write lock inside a single store
	// transaction. If fn returns an error nothing it wrote is kept.
	WithinUserLock(ctx context.Context, userID string, fn func(ctx context.Context, tx LedgerTx) error) error
}
