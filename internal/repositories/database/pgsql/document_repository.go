package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `
		SELECT document_id, owner_id, name, storage_key, total_pages, created_at
		FROM documents
		WHERE document_id = $1;`
	var d domain.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&d.DocumentID,
		&d.OwnerID,
		&d.Name,
		&d.StorageKey,
		&d.TotalPages,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	return &d, nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, d domain.Document) error {
	query := `
		INSERT INTO documents (document_id, owner_id, name, storage_key, total_pages, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query, d.DocumentID, d.OwnerID, d.Name, d.StorageKey, d.TotalPages, d.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert document "+d.DocumentID, err)
	}
	return nil
}
