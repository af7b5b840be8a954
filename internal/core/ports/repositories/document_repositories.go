package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// DocumentReader defines read operations for document metadata
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// DocumentWriter defines write operations for document metadata
type DocumentWriter interface {
	// SaveDocument persists new document metadata.
	SaveDocument(ctx context.Context, document domain.Document) error
}

// DocumentRepositoryFacade combines all document repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
