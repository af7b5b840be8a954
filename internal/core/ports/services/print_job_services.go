package services

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/dto"
)

// SubmissionSvc prices and accepts print batches.
type SubmissionSvc interface {
	// Estimate prices a batch without charging for it.
	Estimate(ctx context.Context, session domain.Session, batch []domain.PrintRequest) (*dto.EstimateResponse, error)

	// Submit charges the whole batch with a single debit and creates one PENDING job per request.
	Submit(ctx context.Context, session domain.Session, batch []domain.PrintRequest) ([]domain.PrintJob, error)
}

// PrintJobReaderSvc defines read operations for print jobs
type PrintJobReaderSvc interface {
	// GetJob retrieves one of the caller's jobs.
	GetJob(ctx context.Context, session domain.Session, jobID string) (*domain.PrintJob, error)

	// ListJobs retrieves the caller's jobs newest first.
	ListJobs(ctx context.Context, session domain.Session, params dto.ListPrintJobsParams) (*dto.ListPrintJobsResponse, error)
}

// PrintJobLifecycleSvc defines print job state transitions
type PrintJobLifecycleSvc interface {
	// CancelJob cancels a PENDING job and refunds its charge.
	CancelJob(ctx context.Context, session domain.Session, jobID string) (*domain.PrintJob, error)

	// UpdateStatus moves a job to PRINTING, COMPLETED or FAILED on behalf of the printer dispatcher.
	UpdateStatus(ctx context.Context, session domain.Session, jobID string, status domain.PrintJobStatus, errorMessage string) (*domain.PrintJob, error)
}

// PrintJobSvcFacade combines all print job service interfaces
type PrintJobSvcFacade interface {
	PrintJobReaderSvc
	PrintJobLifecycleSvc
}
