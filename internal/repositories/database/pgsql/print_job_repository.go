package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/SscSPs/print_quota_service/internal/models"
	"github.com/SscSPs/print_quota_service/internal/utils/mapping"
	"github.com/SscSPs/print_quota_service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const printJobColumns = `job_id, batch_id, user_id, document_id, printer_id, paper_size, duplex, copies,
	page_range, color_mode, color_page_range, status, equivalent_pages_charged,
	submitted_at, completed_at, error_message, last_updated_at`

type PgxPrintJobRepository struct {
	BaseRepository
}

func newPgxPrintJobRepository(pool *pgxpool.Pool) portsrepo.PrintJobRepositoryFacade {
	return &PgxPrintJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrintJobRepositoryFacade = (*PgxPrintJobRepository)(nil)

func (r *PgxPrintJobRepository) FindPrintJobByID(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	return findPrintJob(ctx, r.Pool, jobID, false)
}

// ListPrintJobsByUser uses keyset pagination on (submitted_at, job_id) and fetches one
// extra row to know whether another page exists.
func (r *PgxPrintJobRepository) ListPrintJobsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.PrintJob, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var (
		rows pgx.Rows
		err  error
	)
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", *nextToken, decodeErr.Error())
		}
		query := `SELECT ` + printJobColumns + `
			FROM print_jobs
			WHERE user_id = $1 AND (submitted_at, job_id) < ($2, $3)
			ORDER BY submitted_at DESC, job_id DESC
			LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, userID, cursor.At, cursor.ID, fetchLimit)
	} else {
		query := `SELECT ` + printJobColumns + `
			FROM print_jobs
			WHERE user_id = $1
			ORDER BY submitted_at DESC, job_id DESC
			LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, userID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list print jobs for user "+userID, err)
	}
	defer rows.Close()

	jobs := make([]domain.PrintJob, 0, fetchLimit)
	for rows.Next() {
		job, err := scanPrintJob(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan print job row", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating print job rows for user "+userID, err)
	}

	if len(jobs) <= limit {
		return jobs, nil, nil
	}
	jobs = jobs[:limit]
	last := jobs[limit-1]
	token := pagination.EncodeCursor(last.SubmittedAt, last.JobID)
	return jobs, &token, nil
}

func findPrintJob(ctx context.Context, q querier, jobID string, forUpdate bool) (*domain.PrintJob, error) {
	query := `SELECT ` + printJobColumns + ` FROM print_jobs WHERE job_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	job, err := scanPrintJob(q.QueryRow(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("print job", jobID)
		}
		return nil, apperrors.NewAppError(500, "failed to find print job "+jobID, err)
	}
	return &job, nil
}

func scanPrintJob(row pgx.Row) (domain.PrintJob, error) {
	var m models.PrintJob
	err := row.Scan(
		&m.JobID,
		&m.BatchID,
		&m.UserID,
		&m.DocumentID,
		&m.PrinterID,
		&m.PaperSize,
		&m.Duplex,
		&m.Copies,
		&m.PageRange,
		&m.ColorMode,
		&m.ColorPageRange,
		&m.Status,
		&m.EquivalentPagesCharged,
		&m.SubmittedAt,
		&m.CompletedAt,
		&m.ErrorMessage,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.PrintJob{}, err
	}
	return mapping.ToDomainPrintJob(m), nil
}
