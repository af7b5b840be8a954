package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/SscSPs/print_quota_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork serializes a user's ledger writes with a row lock on page_balances.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinUserLock opens a transaction, makes sure the user's page_balances row exists
// and locks it, then runs fn. Concurrent calls for the same user queue on the row lock.
func (u *PgxUnitOfWork) WithinUserLock(ctx context.Context, userID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if userID == "" {
		return apperrors.NewValidationError("userID", "", "required")
	}

	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer u.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `INSERT INTO page_balances (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return apperrors.NewAppError(500, "failed to ensure balance row for user "+userID, err)
	}
	var locked string
	if err := tx.QueryRow(ctx, `SELECT user_id FROM page_balances WHERE user_id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
		return apperrors.NewAppError(500, "failed to lock balance row for user "+userID, err)
	}

	if err := fn(ctx, &pgxLedgerTx{tx: tx, userID: userID}); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

// pgxLedgerTx implements portsrepo.LedgerTx on an open pgx transaction.
type pgxLedgerTx struct {
	tx     pgx.Tx
	userID string
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) CurrentBalance(ctx context.Context, userID string) (int64, error) {
	balance, _, err := latestBalance(ctx, t.tx, userID)
	return balance, err
}

// AppendTransaction inserts the entry, lets the database assign its sequence and keeps
// the page_balances projection in step.
func (t *pgxLedgerTx) AppendTransaction(ctx context.Context, txn *domain.PageTransaction) error {
	if txn.UserID != t.userID {
		return apperrors.NewAppError(500, "ledger write outside the locked user", fmt.Errorf("locked %s, got %s", t.userID, txn.UserID))
	}
	m := mapping.ToModelPageTransaction(*txn)
	query := `
		INSERT INTO page_transactions (transaction_id, user_id, type, delta, balance_after,
			reference_job_id, payment_reference, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq;`
	err := t.tx.QueryRow(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Delta,
		m.BalanceAfter,
		m.ReferenceJobID,
		m.PaymentReference,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&txn.Sequence)
	if err != nil {
		switch pgErrorCode(err) {
		case pgCheckViolation:
			if pgConstraint(err) == "page_transactions_balance_after_check" {
				return &apperrors.InsufficientBalanceError{Balance: txn.BalanceAfter - txn.Delta, Required: -txn.Delta}
			}
		case pgUniqueViolation:
			return apperrors.NewConflictError("ledger entry %s conflicts with an existing entry", txn.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert page transaction "+txn.TransactionID, err)
	}

	_, err = t.tx.Exec(ctx, `
		UPDATE page_balances SET current_a4 = $2, last_sequence = $3, updated_at = $4
		WHERE user_id = $1;`, t.userID, txn.BalanceAfter, txn.Sequence, txn.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance projection for user "+t.userID, err)
	}
	return nil
}

func (t *pgxLedgerTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PageTransaction, error) {
	return findPageTransaction(ctx, t.tx, transactionID)
}

// CreatePrintJobs inserts all jobs of a batch in one round trip.
func (t *pgxLedgerTx) CreatePrintJobs(ctx context.Context, jobs []domain.PrintJob) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO print_jobs (` + printJobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	for _, job := range jobs {
		m := mapping.ToModelPrintJob(job)
		batch.Queue(query,
			m.JobID, m.BatchID, m.UserID, m.DocumentID, m.PrinterID, m.PaperSize, m.Duplex, m.Copies,
			m.PageRange, m.ColorMode, m.ColorPageRange, m.Status, m.EquivalentPagesCharged,
			m.SubmittedAt, m.CompletedAt, m.ErrorMessage, m.LastUpdatedAt,
		)
	}

	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, job := range jobs {
		if _, err := br.Exec(); err != nil {
			if pgErrorCode(err) == pgUniqueViolation {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to insert print job "+job.JobID, err)
		}
	}
	return nil
}

func (t *pgxLedgerTx) FindPrintJob(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	return findPrintJob(ctx, t.tx, jobID, true)
}

func (t *pgxLedgerTx) UpdatePrintJobStatus(ctx context.Context, job domain.PrintJob) error {
	m := mapping.ToModelPrintJob(job)
	tag, err := t.tx.Exec(ctx, `
		UPDATE print_jobs
		SET status = $2, completed_at = $3, error_message = $4, last_updated_at = $5
		WHERE job_id = $1;`, m.JobID, m.Status, m.CompletedAt, m.ErrorMessage, m.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update print job "+job.JobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("print job", job.JobID)
	}
	return nil
}

func (t *pgxLedgerTx) FindPayment(ctx context.Context, reference string) (*domain.Payment, error) {
	return findPayment(ctx, t.tx, reference, true)
}

// SavePayment upserts by reference. The unique reference makes concurrent first
// confirmations under different users collide instead of both crediting.
func (t *pgxLedgerTx) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (reference) DO UPDATE
		SET status = EXCLUDED.status,
			transaction_id = EXCLUDED.transaction_id,
			last_updated_at = EXCLUDED.last_updated_at
		WHERE payments.user_id = EXCLUDED.user_id;`
	tag, err := t.tx.Exec(ctx, query, m.Reference, m.UserID, m.Amount, m.Status, m.TransactionID, m.ExpiresAt, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payment "+payment.Reference, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("payment %s belongs to another user", payment.Reference)
	}
	return nil
}
