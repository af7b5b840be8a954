package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// PrintJobReader defines read operations for print jobs
type PrintJobReader interface {
	// FindPrintJobByID retrieves a specific print job by its ID.
	FindPrintJobByID(ctx context.Context, jobID string) (*domain.PrintJob, error)

	// ListPrintJobsByUser retrieves a user's jobs newest first using token-based pagination.
	// It returns the jobs, a token for the next page, and an error.
	ListPrintJobsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.PrintJob, *string, error)
}

// PrintJobRepositoryFacade combines all print job repository interfaces
type PrintJobRepositoryFacade interface {
	PrintJobReader
}
