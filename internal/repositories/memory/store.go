// Package memory is a process-local implementation of every repository port. It has the
// same locking and atomicity semantics as the postgres adapter and backs tests and
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/SscSPs/print_quota_service/internal/utils/pagination"
)

// Store holds all data in maps guarded by mu. Per-user write serialization is provided
// by userLocks, independently of mu, so different users commit in parallel.
type Store struct {
	mu           sync.RWMutex
	transactions map[string][]domain.PageTransaction // by user, ascending Sequence
	txnIndex     map[string]domain.PageTransaction
	jobs         map[string]domain.PrintJob
	documents    map[string]domain.Document
	printers     map[string]domain.Printer
	payments     map[string]domain.Payment

	sequence atomic.Int64

	locksMu   sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string][]domain.PageTransaction),
		txnIndex:     make(map[string]domain.PageTransaction),
		jobs:         make(map[string]domain.PrintJob),
		documents:    make(map[string]domain.Document),
		printers:     make(map[string]domain.Printer),
		payments:     make(map[string]domain.Payment),
		userLocks:    make(map[string]*sync.Mutex),
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade   = (*Store)(nil)
	_ portsrepo.PrintJobRepositoryFacade = (*Store)(nil)
	_ portsrepo.DocumentRepositoryFacade = (*Store)(nil)
	_ portsrepo.PrinterReader            = (*Store)(nil)
	_ portsrepo.PaymentReader            = (*Store)(nil)
	_ portsrepo.UnitOfWork               = (*Store)(nil)
)

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:   s,
		PrintJobRepo: s,
		DocumentRepo: s,
		PrinterRepo:  s,
		PaymentRepo:  s,
		UnitOfWork:   s,
	}
}

// PutPrinter adds or replaces a printer in the registry.
func (s *Store) PutPrinter(p domain.Printer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printers[p.PrinterID] = p
}

// --- Ledger ---

func (s *Store) FindBalance(_ context.Context, userID string) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txns := s.transactions[userID]
	if len(txns) == 0 {
		return 0, 0, nil
	}
	last := txns[len(txns)-1]
	return last.BalanceAfter, last.Sequence, nil
}

func (s *Store) ListTransactionsByUser(_ context.Context, userID string, limit int, offset int) ([]domain.PageTransaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txns := s.transactions[userID]
	total := int64(len(txns))
	if offset < 0 {
		offset = 0
	}

	result := make([]domain.PageTransaction, 0, limit)
	for i := len(txns) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, txns[i])
	}
	return result, total, nil
}

// --- Print jobs ---

func (s *Store) FindPrintJobByID(_ context.Context, jobID string) (*domain.PrintJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, apperrors.NewNotFoundError("print job", jobID)
	}
	return &job, nil
}

func (s *Store) ListPrintJobsByUser(_ context.Context, userID string, limit int, nextToken *string) ([]domain.PrintJob, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", *nextToken, err.Error())
		}
		cursor = &c
	}

	s.mu.RLock()
	jobs := make([]domain.PrintJob, 0)
	for _, j := range s.jobs {
		if j.UserID != userID {
			continue
		}
		if cursor != nil && !cursor.Before(j.SubmittedAt, j.JobID) {
			continue
		}
		jobs = append(jobs, j)
	}
	s.mu.RUnlock()

	sort.Slice(jobs, func(a, b int) bool {
		if jobs[a].SubmittedAt.Equal(jobs[b].SubmittedAt) {
			return jobs[a].JobID > jobs[b].JobID
		}
		return jobs[a].SubmittedAt.After(jobs[b].SubmittedAt)
	})

	if len(jobs) <= limit {
		return jobs, nil, nil
	}
	page := jobs[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.SubmittedAt, last.JobID)
	return page, &token, nil
}

// --- Documents ---

func (s *Store) FindDocumentByID(_ context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("document", documentID)
	}
	return &doc, nil
}

func (s *Store) SaveDocument(_ context.Context, document domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[document.DocumentID]; exists {
		return apperrors.ErrDuplicate
	}
	s.documents[document.DocumentID] = document
	return nil
}

// --- Printers ---

func (s *Store) FindPrinterByID(_ context.Context, printerID string) (*domain.Printer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.printers[printerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("printer", printerID)
	}
	return &p, nil
}

func (s *Store) ListPrinters(_ context.Context) ([]domain.Printer, error) {
	s.mu.RLock()
	printers := make([]domain.Printer, 0, len(s.printers))
	for _, p := range s.printers {
		printers = append(printers, p)
	}
	s.mu.RUnlock()
	sort.Slice(printers, func(i, j int) bool { return printers[i].Name < printers[j].Name })
	return printers, nil
}

// --- Payments ---

func (s *Store) FindPaymentByReference(_ context.Context, reference string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[reference]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment", reference)
	}
	return &p, nil
}

func (s *Store) ListPendingPayments(_ context.Context) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]domain.Payment, 0)
	for _, p := range s.payments {
		if p.Status == domain.PaymentPending {
			pending = append(pending, p)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}
