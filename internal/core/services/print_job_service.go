package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/utils/pagination"
)

const (
	defaultJobPageSize = 20
	maxJobPageSize     = 100
)

// printJobService implements portssvc.PrintJobSvcFacade
type printJobService struct {
	BaseService
	jobRepo portsrepo.PrintJobRepositoryFacade
	book    *ledgerBook
	events  portssvc.EventSink
}

// NewPrintJobService creates a new print job service. events may be nil.
func NewPrintJobService(jobRepo portsrepo.PrintJobRepositoryFacade, uow portsrepo.UnitOfWork, cache *BalanceCache, events portssvc.EventSink, options ...Option) portssvc.PrintJobSvcFacade {
	svc := &printJobService{
		jobRepo: jobRepo,
		events:  events,
	}
	svc.apply(options)
	svc.book = newLedgerBook(uow, cache, svc.Now)
	return svc
}

var _ portssvc.PrintJobSvcFacade = (*printJobService)(nil)

func (s *printJobService) GetJob(ctx context.Context, session domain.Session, jobID string) (*domain.PrintJob, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindPrintJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(session, job.UserID, "print job", jobID); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *printJobService) ListJobs(ctx context.Context, session domain.Session, params dto.ListPrintJobsParams) (*dto.ListPrintJobsResponse, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	limit := pagination.ClampSize(params.Limit, defaultJobPageSize, maxJobPageSize)

	jobs, nextToken, err := s.jobRepo.ListPrintJobsByUser(ctx, session.UserID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list print jobs", slog.String("user_id", session.UserID))
		return nil, err
	}
	return &dto.ListPrintJobsResponse{Jobs: dto.ToPrintJobResponses(jobs), NextToken: nextToken}, nil
}

// CancelJob moves a PENDING job to CANCELLED and credits its charge back with a REFUND
// entry in the same unit of work.
func (s *printJobService) CancelJob(ctx context.Context, session domain.Session, jobID string) (*domain.PrintJob, error) {
	owner, err := s.GetJob(ctx, session, jobID)
	if err != nil {
		return nil, err
	}

	var cancelled *domain.PrintJob
	err = s.book.run(ctx, owner.UserID, func(ctx context.Context, tx *bookTx) error {
		job, err := tx.FindPrintJob(ctx, jobID)
		if err != nil {
			return err
		}
		if !job.Status.CanTransitionTo(domain.JobCancelled) {
			return apperrors.NewConflictError("print job %s is %s and can no longer be cancelled", jobID, job.Status)
		}
		job.Status = domain.JobCancelled
		job.LastUpdatedAt = tx.now
		if err := tx.UpdatePrintJobStatus(ctx, *job); err != nil {
			return err
		}
		if job.EquivalentPagesCharged > 0 {
			if _, err := tx.credit(ctx, domain.Refund, job.EquivalentPagesCharged, "cancelled print job", session.UserID, &job.JobID, nil); err != nil {
				return err
			}
		}
		cancelled = job
		return nil
	})
	if err != nil {
		s.LogInfo(ctx, "Print job not cancelled", slog.String("job_id", jobID), slog.String("error", err.Error()))
		return nil, err
	}

	printJobTransitionsTotal.WithLabelValues(string(domain.JobCancelled)).Inc()
	s.LogInfo(ctx, "Print job cancelled and refunded",
		slog.String("job_id", jobID),
		slog.Int64("refund", cancelled.EquivalentPagesCharged))
	if s.events != nil {
		s.events.Enqueue(cancelled.UserID, "print_job_cancelled", map[string]any{"job_id": jobID, "refund": cancelled.EquivalentPagesCharged})
	}
	return cancelled, nil
}

// UpdateStatus applies a dispatcher-reported transition. Failed jobs are not refunded;
// an administrator may allocate a correction credit instead.
func (s *printJobService) UpdateStatus(ctx context.Context, session domain.Session, jobID string, status domain.PrintJobStatus, errorMessage string) (*domain.PrintJob, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if !session.IsAdmin() && session.Role != domain.RoleService {
		return nil, apperrors.ErrForbidden
	}
	switch status {
	case domain.JobPrinting, domain.JobCompleted, domain.JobFailed:
	default:
		return nil, apperrors.NewValidationError("status", string(status), "must be PRINTING, COMPLETED or FAILED")
	}
	if status == domain.JobFailed && errorMessage == "" {
		return nil, apperrors.NewValidationError("errorMessage", "", "required when a job fails")
	}

	current, err := s.jobRepo.FindPrintJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var updated *domain.PrintJob
	err = s.book.run(ctx, current.UserID, func(ctx context.Context, tx *bookTx) error {
		job, err := tx.FindPrintJob(ctx, jobID)
		if err != nil {
			return err
		}
		if !job.Status.CanTransitionTo(status) {
			return apperrors.NewConflictError("print job %s cannot move from %s to %s", jobID, job.Status, status)
		}
		job.Status = status
		job.LastUpdatedAt = tx.now
		if status.IsTerminal() {
			completedAt := tx.now
			job.CompletedAt = &completedAt
		}
		if status == domain.JobFailed {
			job.ErrorMessage = &errorMessage
		}
		if err := tx.UpdatePrintJobStatus(ctx, *job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		s.LogInfo(ctx, "Print job status not updated", slog.String("job_id", jobID), slog.String("status", string(status)), slog.String("error", err.Error()))
		return nil, err
	}

	printJobTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.LogInfo(ctx, "Print job status updated", slog.String("job_id", jobID), slog.String("status", string(status)))
	return updated, nil
}
