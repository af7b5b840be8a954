package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/utils/printing"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxBatchSize is the largest number of documents accepted in one submission.
	MaxBatchSize = 20

	resolveConcurrency = 8
)

// submissionService implements portssvc.SubmissionSvc
type submissionService struct {
	BaseService
	documentRepo portsrepo.DocumentReader
	printerRepo  portsrepo.PrinterReader
	ledger       portssvc.LedgerReaderSvc
	book         *ledgerBook
	events       portssvc.EventSink
}

// NewSubmissionService creates the print batch coordinator. events may be nil.
func NewSubmissionService(
	documentRepo portsrepo.DocumentReader,
	printerRepo portsrepo.PrinterReader,
	ledger portssvc.LedgerReaderSvc,
	uow portsrepo.UnitOfWork,
	cache *BalanceCache,
	events portssvc.EventSink,
	options ...Option,
) portssvc.SubmissionSvc {
	svc := &submissionService{
		documentRepo: documentRepo,
		printerRepo:  printerRepo,
		ledger:       ledger,
		events:       events,
	}
	svc.apply(options)
	svc.book = newLedgerBook(uow, cache, svc.Now)
	return svc
}

var _ portssvc.SubmissionSvc = (*submissionService)(nil)

// pricedBatch is a fully validated batch with a charge per request.
type pricedBatch struct {
	documents []*domain.Document
	quotes    []printing.Quote
	total     int64
}

func (s *submissionService) Estimate(ctx context.Context, session domain.Session, batch []domain.PrintRequest) (*dto.EstimateResponse, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	priced, err := s.price(ctx, session, batch)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.GetBalance(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EstimateResponse{
		Items:          make([]dto.EstimateItem, len(batch)),
		TotalCharge:    priced.total,
		CurrentBalance: balance.CurrentA4,
		Sufficient:     balance.CurrentA4 >= priced.total,
	}
	for i, q := range priced.quotes {
		resp.Items[i] = dto.EstimateItem{
			DocumentID:      batch[i].DocumentID,
			PageCount:       q.PageCount,
			EquivalentPages: q.EquivalentPages,
		}
	}
	return resp, nil
}

func (s *submissionService) Submit(ctx context.Context, session domain.Session, batch []domain.PrintRequest) ([]domain.PrintJob, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx).With(slog.String("user_id", session.UserID), slog.Int("batch_size", len(batch)))

	priced, err := s.price(ctx, session, batch)
	if err != nil {
		printBatchesTotal.WithLabelValues("rejected").Inc()
		logger.Info("Print batch rejected", slog.String("error", err.Error()))
		return nil, err
	}
	if priced.total <= 0 {
		printBatchesTotal.WithLabelValues("rejected").Inc()
		return nil, apperrors.NewValidationError("documents", "", "batch has no billable pages")
	}

	batchID := uuid.NewString()
	now := s.Now()
	jobs := make([]domain.PrintJob, len(batch))
	for i, req := range batch {
		jobs[i] = domain.PrintJob{
			JobID:                  uuid.NewString(),
			BatchID:                batchID,
			UserID:                 session.UserID,
			Request:                req,
			Status:                 domain.JobPending,
			EquivalentPagesCharged: priced.quotes[i].EquivalentPages,
			SubmittedAt:            now,
			LastUpdatedAt:          now,
		}
	}

	var balanceAfter int64
	err = s.book.run(ctx, session.UserID, func(ctx context.Context, tx *bookTx) error {
		note := fmt.Sprintf("print batch of %d document(s)", len(jobs))
		debit, err := tx.debit(ctx, priced.total, batchID, note, session.UserID)
		if err != nil {
			return err
		}
		if err := checkChargesMatchDebit(jobs, debit); err != nil {
			return err
		}
		balanceAfter = debit.BalanceAfter
		return tx.CreatePrintJobs(ctx, jobs)
	})
	if err != nil {
		outcome := "failed"
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			outcome = "insufficient_balance"
		}
		printBatchesTotal.WithLabelValues(outcome).Inc()
		logger.Info("Print batch not accepted", slog.String("outcome", outcome), slog.String("error", err.Error()))
		return nil, err
	}

	printBatchesTotal.WithLabelValues("accepted").Inc()
	logger.Info("Print batch accepted",
		slog.String("batch_id", batchID),
		slog.Int64("total_charge", priced.total),
		slog.Int64("balance_after", balanceAfter))
	if s.events != nil {
		s.events.Enqueue(session.UserID, "print_batch_submitted", map[string]any{
			"batch_id":     batchID,
			"documents":    len(jobs),
			"total_charge": priced.total,
		})
	}
	return jobs, nil
}

// price validates every request of the batch and computes its charge. Any failure
// rejects the whole batch.
func (s *submissionService) price(ctx context.Context, session domain.Session, batch []domain.PrintRequest) (*pricedBatch, error) {
	if len(batch) == 0 {
		return nil, apperrors.NewValidationError("documents", "", "at least one document is required")
	}
	if len(batch) > MaxBatchSize {
		return nil, apperrors.NewValidationError("documents", strconv.Itoa(len(batch)), fmt.Sprintf("at most %d documents per batch", MaxBatchSize))
	}
	for i, req := range batch {
		if err := validateRequestShape(i, req); err != nil {
			return nil, err
		}
	}

	documents, printers, err := s.resolve(ctx, session, batch)
	if err != nil {
		return nil, err
	}

	priced := &pricedBatch{documents: documents, quotes: make([]printing.Quote, len(batch))}
	for i, req := range batch {
		quote, err := printing.QuoteRequest(req, documents[i].TotalPages)
		if err != nil {
			return nil, err
		}
		if err := checkCapabilities(i, req, printers[i]); err != nil {
			return nil, err
		}
		priced.quotes[i] = quote
		priced.total += quote.EquivalentPages
	}
	return priced, nil
}

// resolve looks up every document and printer of the batch concurrently.
func (s *submissionService) resolve(ctx context.Context, session domain.Session, batch []domain.PrintRequest) ([]*domain.Document, []*domain.Printer, error) {
	documents := make([]*domain.Document, len(batch))
	printers := make([]*domain.Printer, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, req := range batch {
		g.Go(func() error {
			doc, err := s.documentRepo.FindDocumentByID(gctx, req.DocumentID)
			if err != nil {
				return err
			}
			// Another user's document is reported exactly like a missing one.
			if doc.OwnerID != session.UserID {
				return apperrors.NewNotFoundError("document", req.DocumentID)
			}
			documents[i] = doc
			return nil
		})
		g.Go(func() error {
			printer, err := s.printerRepo.FindPrinterByID(gctx, req.PrinterID)
			if err != nil {
				return err
			}
			printers[i] = printer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return documents, printers, nil
}

func validateRequestShape(index int, req domain.PrintRequest) error {
	field := func(name string) string { return fmt.Sprintf("documents[%d].%s", index, name) }
	switch {
	case req.DocumentID == "":
		return apperrors.NewValidationError(field("documentID"), "", "required")
	case req.PrinterID == "":
		return apperrors.NewValidationError(field("printerID"), "", "required")
	case !req.PaperSize.IsValid():
		return apperrors.NewValidationError(field("paperSize"), string(req.PaperSize), "must be A4 or A3")
	case !req.ColorMode.IsValid():
		return apperrors.NewValidationError(field("colorMode"), string(req.ColorMode), "must be BLACK_WHITE or COLOR")
	case req.Copies < domain.MinCopies || req.Copies > domain.MaxCopies:
		return apperrors.NewValidationError(field("copies"), strconv.Itoa(req.Copies), "must be between 1 and 10")
	}
	if err := printing.ValidatePageRangeSyntax(req.PageRange); err != nil {
		return err
	}
	return nil
}

func checkCapabilities(index int, req domain.PrintRequest, printer *domain.Printer) error {
	mismatch := func(feature string) error {
		return &apperrors.CapabilityMismatchError{RequestIndex: index, PrinterID: printer.PrinterID, Feature: feature}
	}
	if !printer.SupportsSize(req.PaperSize) {
		return mismatch("paper size " + string(req.PaperSize))
	}
	if req.Duplex && !printer.SupportsDuplex {
		return mismatch("duplex")
	}
	if req.WantsColor() && !printer.SupportsColor {
		return mismatch("color")
	}
	return nil
}

// checkChargesMatchDebit guards the link between a batch's jobs and its single DEDUCT.
func checkChargesMatchDebit(jobs []domain.PrintJob, debit *domain.PageTransaction) error {
	var sum int64
	for _, j := range jobs {
		sum += j.EquivalentPagesCharged
	}
	if sum != -debit.Delta {
		return apperrors.NewAppError(500, "batch charge mismatch",
			fmt.Errorf("jobs charge %d but debit is %d", sum, -debit.Delta))
	}
	return nil
}
