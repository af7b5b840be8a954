package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// ledgerBook is the single place ledger entries are written. Services that change a
// balance as part of a larger operation (a batch submission, a cancellation, a payment
// confirmation) open a bookTx and do all of their writes through it.
type ledgerBook struct {
	uow   portsrepo.UnitOfWork
	cache *BalanceCache
	now   func() time.Time
}

func newLedgerBook(uow portsrepo.UnitOfWork, cache *BalanceCache, now func() time.Time) *ledgerBook {
	return &ledgerBook{uow: uow, cache: cache, now: now}
}

// bookTx is the per-user view of an open unit of work.
type bookTx struct {
	portsrepo.LedgerTx
	userID   string
	now      time.Time
	appended []domain.PageTransaction
}

// run executes fn under userID's lock. Once the unit of work commits the balance cache
// is refreshed and metrics are recorded for every appended entry.
func (b *ledgerBook) run(ctx context.Context, userID string, fn func(ctx context.Context, tx *bookTx) error) error {
	var committed []domain.PageTransaction
	err := b.uow.WithinUserLock(ctx, userID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		btx := &bookTx{LedgerTx: tx, userID: userID, now: b.now()}
		if err := fn(ctx, btx); err != nil {
			return err
		}
		committed = btx.appended
		return nil
	})
	if err != nil {
		return err
	}

	for _, txn := range committed {
		ledgerTransactionsTotal.WithLabelValues(string(txn.Type)).Inc()
		ledgerPagesTotal.WithLabelValues(string(txn.Type)).Add(float64(abs(txn.Delta)))
	}
	if n := len(committed); n > 0 {
		last := committed[n-1]
		b.cache.Set(userID, last.BalanceAfter, last.Sequence)
	}
	return nil
}

// credit appends a positive entry of txnType.
func (t *bookTx) credit(ctx context.Context, txnType domain.PageTransactionType, amount int64, note, createdBy string, refJobID, paymentRef *string) (*domain.PageTransaction, error) {
	if !txnType.IsCredit() {
		return nil, apperrors.NewValidationError("type", string(txnType), "not a credit type")
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", fmt.Sprint(amount), "must be positive")
	}
	before, err := t.CurrentBalance(ctx, t.userID)
	if err != nil {
		return nil, err
	}
	return t.append(ctx, before, domain.PageTransaction{
		Type:             txnType,
		Delta:            amount,
		ReferenceJobID:   refJobID,
		PaymentReference: paymentRef,
		Note:             note,
		CreatedBy:        createdBy,
	})
}

// debit appends a DEDUCT entry. Nothing is written when the balance does not cover amount.
func (t *bookTx) debit(ctx context.Context, amount int64, referenceJobID, note, createdBy string) (*domain.PageTransaction, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", fmt.Sprint(amount), "must be positive")
	}
	if referenceJobID == "" {
		return nil, apperrors.NewValidationError("referenceJobID", "", "required for a debit")
	}
	before, err := t.CurrentBalance(ctx, t.userID)
	if err != nil {
		return nil, err
	}
	if before < amount {
		return nil, &apperrors.InsufficientBalanceError{Balance: before, Required: amount}
	}
	return t.append(ctx, before, domain.PageTransaction{
		Type:           domain.Deduct,
		Delta:          -amount,
		ReferenceJobID: &referenceJobID,
		Note:           note,
		CreatedBy:      createdBy,
	})
}

func (t *bookTx) append(ctx context.Context, before int64, entry domain.PageTransaction) (*domain.PageTransaction, error) {
	entry.TransactionID = uuid.NewString()
	entry.UserID = t.userID
	entry.BalanceAfter = before + entry.Delta
	entry.CreatedAt = t.now
	if err := entry.Validate(before); err != nil {
		return nil, apperrors.NewAppError(500, "ledger entry rejected", err)
	}
	if err := t.AppendTransaction(ctx, &entry); err != nil {
		return nil, err
	}
	t.appended = append(t.appended, entry)
	return &entry, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
