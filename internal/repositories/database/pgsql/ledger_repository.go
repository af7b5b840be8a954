package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/SscSPs/print_quota_service/internal/models"
	"github.com/SscSPs/print_quota_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pageTransactionColumns = `seq, transaction_id, user_id, type, delta, balance_after,
	reference_job_id, payment_reference, note, created_at, created_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) FindBalance(ctx context.Context, userID string) (int64, int64, error) {
	return latestBalance(ctx, r.Pool, userID)
}

// ListTransactionsByUser pages through a user's ledger newest first.
func (r *PgxLedgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.PageTransaction, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM page_transactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions for user "+userID, err)
	}

	query := `SELECT ` + pageTransactionColumns + `
		FROM page_transactions
		WHERE user_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list transactions for user "+userID, err)
	}
	defer rows.Close()

	txns := make([]domain.PageTransaction, 0, limit)
	for rows.Next() {
		txn, err := scanPageTransaction(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating transaction rows for user "+userID, err)
	}
	return txns, total, nil
}

// latestBalance reads the BalanceAfter of the user's last ledger entry.
func latestBalance(ctx context.Context, q querier, userID string) (int64, int64, error) {
	var balance, seq int64
	err := q.QueryRow(ctx, `
		SELECT balance_after, seq FROM page_transactions
		WHERE user_id = $1
		ORDER BY seq DESC
		LIMIT 1;`, userID).Scan(&balance, &seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, nil
		}
		return 0, 0, apperrors.NewAppError(500, "failed to read balance for user "+userID, err)
	}
	return balance, seq, nil
}

func findPageTransaction(ctx context.Context, q querier, transactionID string) (*domain.PageTransaction, error) {
	row := q.QueryRow(ctx, `SELECT `+pageTransactionColumns+` FROM page_transactions WHERE transaction_id = $1`, transactionID)
	txn, err := scanPageTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction", transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	return &txn, nil
}

func scanPageTransaction(row pgx.Row) (domain.PageTransaction, error) {
	var m models.PageTransaction
	err := row.Scan(
		&m.Sequence,
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.Delta,
		&m.BalanceAfter,
		&m.ReferenceJobID,
		&m.PaymentReference,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return domain.PageTransaction{}, err
	}
	return mapping.ToDomainPageTransaction(m), nil
}
