package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
)

func (s *Store) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// WithinUserLock holds userID's mutex while fn runs against a staging area. Staged
// writes are applied to the store in one step only if fn succeeds.
func (s *Store) WithinUserLock(ctx context.Context, userID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if userID == "" {
		return apperrors.NewValidationError("userID", "", "required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx := &memTx{
		store:        s,
		userID:       userID,
		jobs:         make(map[string]domain.PrintJob),
		payments:     make(map[string]domain.Payment),
		newPayments:  make(map[string]bool),
		createdJobID: make(map[string]bool),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

// memTx stages writes made inside a unit of work.
type memTx struct {
	store        *Store
	userID       string
	txns         []domain.PageTransaction
	jobs         map[string]domain.PrintJob
	createdJobID map[string]bool
	payments     map[string]domain.Payment
	newPayments  map[string]bool
}

var _ portsrepo.LedgerTx = (*memTx)(nil)

func (t *memTx) CurrentBalance(ctx context.Context, userID string) (int64, error) {
	if userID == t.userID && len(t.txns) > 0 {
		return t.txns[len(t.txns)-1].BalanceAfter, nil
	}
	balance, _, err := t.store.FindBalance(ctx, userID)
	return balance, err
}

func (t *memTx) AppendTransaction(_ context.Context, txn *domain.PageTransaction) error {
	if txn.UserID != t.userID {
		return apperrors.NewAppError(500, "ledger write outside the locked user", fmt.Errorf("locked %s, got %s", t.userID, txn.UserID))
	}
	txn.Sequence = t.store.sequence.Add(1)
	t.txns = append(t.txns, *txn)
	return nil
}

func (t *memTx) FindTransactionByID(_ context.Context, transactionID string) (*domain.PageTransaction, error) {
	for i := range t.txns {
		if t.txns[i].TransactionID == transactionID {
			txn := t.txns[i]
			return &txn, nil
		}
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	txn, ok := t.store.txnIndex[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction", transactionID)
	}
	return &txn, nil
}

func (t *memTx) CreatePrintJobs(_ context.Context, jobs []domain.PrintJob) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for _, j := range jobs {
		if _, exists := t.store.jobs[j.JobID]; exists || t.createdJobID[j.JobID] {
			return apperrors.ErrDuplicate
		}
		t.jobs[j.JobID] = j
		t.createdJobID[j.JobID] = true
	}
	return nil
}

func (t *memTx) FindPrintJob(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	if j, ok := t.jobs[jobID]; ok {
		return &j, nil
	}
	return t.store.FindPrintJobByID(ctx, jobID)
}

func (t *memTx) UpdatePrintJobStatus(ctx context.Context, job domain.PrintJob) error {
	current, err := t.FindPrintJob(ctx, job.JobID)
	if err != nil {
		return err
	}
	current.Status = job.Status
	current.CompletedAt = job.CompletedAt
	current.ErrorMessage = job.ErrorMessage
	current.LastUpdatedAt = job.LastUpdatedAt
	t.jobs[job.JobID] = *current
	return nil
}

func (t *memTx) FindPayment(ctx context.Context, reference string) (*domain.Payment, error) {
	if p, ok := t.payments[reference]; ok {
		return &p, nil
	}
	return t.store.FindPaymentByReference(ctx, reference)
}

func (t *memTx) SavePayment(ctx context.Context, payment domain.Payment) error {
	if _, staged := t.payments[payment.Reference]; !staged {
		if _, err := t.store.FindPaymentByReference(ctx, payment.Reference); err != nil {
			t.newPayments[payment.Reference] = true
		}
	}
	t.payments[payment.Reference] = payment
	return nil
}

func (t *memTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// A reference first seen by this unit of work may have been created meanwhile under
	// another user's lock; the unique reference wins.
	for ref := range t.newPayments {
		if _, exists := s.payments[ref]; exists {
			return apperrors.NewConflictError("payment %s already exists", ref)
		}
	}
	for id := range t.createdJobID {
		if _, exists := s.jobs[id]; exists {
			return apperrors.ErrDuplicate
		}
	}

	for _, txn := range t.txns {
		s.transactions[t.userID] = append(s.transactions[t.userID], txn)
		s.txnIndex[txn.TransactionID] = txn
	}
	for id, j := range t.jobs {
		s.jobs[id] = j
	}
	for ref, p := range t.payments {
		s.payments[ref] = p
	}
	return nil
}
