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

const paymentColumns = `reference, user_id, amount, status, transaction_id, expires_at, created_at, last_updated_at`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentReader {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentReader = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) FindPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return findPayment(ctx, r.Pool, reference, false)
}

func (r *PgxPaymentRepository) ListPendingPayments(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY created_at`, string(domain.PaymentPending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pending payments", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

func findPayment(ctx context.Context, q querier, reference string, forUpdate bool) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reference = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanPayment(q.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment", reference)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+reference, err)
	}
	return &p, nil
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var m models.Payment
	err := row.Scan(&m.Reference, &m.UserID, &m.Amount, &m.Status, &m.TransactionID, &m.ExpiresAt, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		return domain.Payment{}, err
	}
	return mapping.ToDomainPayment(m), nil
}
