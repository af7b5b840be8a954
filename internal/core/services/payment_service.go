package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/utils"
)

// DefaultPaymentExpiry bounds how long a top-up stays payable.
const DefaultPaymentExpiry = 15 * time.Minute

const paymentReferencePrefix = "PQ-"

// paymentService implements portssvc.PaymentSvc
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentReader
	book        *ledgerBook
	expiry      time.Duration
	poller      *PaymentPoller
	events      portssvc.EventSink
}

// PaymentOption configures the payment service.
type PaymentOption func(*paymentService)

// WithPaymentExpiry sets how long new top-ups stay payable.
func WithPaymentExpiry(expiry time.Duration) PaymentOption {
	return func(s *paymentService) {
		if expiry > 0 {
			s.expiry = expiry
		}
	}
}

// WithGatewayPolling watches pending top-ups at the gateway every interval.
func WithGatewayPolling(gateway portssvc.PaymentGateway, interval time.Duration, logger *slog.Logger) PaymentOption {
	return func(s *paymentService) {
		if gateway != nil {
			s.poller = NewPaymentPoller(gateway, s, interval, logger)
		}
	}
}

// WithPaymentEvents sends analytics events for confirmed payments.
func WithPaymentEvents(events portssvc.EventSink) PaymentOption {
	return func(s *paymentService) {
		s.events = events
	}
}

// WithPaymentClock replaces the wall clock.
func WithPaymentClock(clock func() time.Time) PaymentOption {
	return func(s *paymentService) {
		s.Clock = clock
	}
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentReader, uow portsrepo.UnitOfWork, cache *BalanceCache, options ...PaymentOption) portssvc.PaymentSvc {
	svc := &paymentService{
		paymentRepo: paymentRepo,
		expiry:      DefaultPaymentExpiry,
	}
	for _, option := range options {
		option(svc)
	}
	svc.book = newLedgerBook(uow, cache, svc.Now)
	return svc
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func (s *paymentService) StartTopUp(ctx context.Context, session domain.Session, amount int64) (*domain.Payment, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", fmt.Sprint(amount), "must be positive")
	}

	reference, err := utils.RandomReference(paymentReferencePrefix, 16)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate payment reference", err)
	}
	now := s.Now()
	payment := domain.Payment{
		Reference:     reference,
		UserID:        session.UserID,
		Amount:        amount,
		Status:        domain.PaymentPending,
		ExpiresAt:     now.Add(s.expiry),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	err = s.book.run(ctx, session.UserID, func(ctx context.Context, tx *bookTx) error {
		return tx.SavePayment(ctx, payment)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to start top-up", slog.String("user_id", session.UserID))
		return nil, err
	}

	paymentsTotal.WithLabelValues(string(domain.PaymentPending)).Inc()
	s.LogInfo(ctx, "Top-up started", slog.String("reference", payment.Reference), slog.Int64("amount", amount))
	if s.poller != nil {
		s.poller.Watch(payment)
	}
	return &payment, nil
}

func (s *paymentService) CancelTopUp(ctx context.Context, session domain.Session, reference string) (*domain.Payment, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	var cancelled *domain.Payment
	err := s.book.run(ctx, session.UserID, func(ctx context.Context, tx *bookTx) error {
		payment, err := tx.FindPayment(ctx, reference)
		if err != nil {
			return err
		}
		if payment.UserID != session.UserID {
			return apperrors.NewNotFoundError("payment", reference)
		}
		if payment.Status != domain.PaymentPending {
			return apperrors.NewConflictError("payment %s is %s and cannot be cancelled", reference, payment.Status)
		}
		payment.Status = domain.PaymentCancelled
		payment.LastUpdatedAt = tx.now
		cancelled = payment
		return tx.SavePayment(ctx, *payment)
	})
	if err != nil {
		return nil, err
	}

	if s.poller != nil {
		s.poller.Stop(reference)
	}
	paymentsTotal.WithLabelValues(string(domain.PaymentCancelled)).Inc()
	s.LogInfo(ctx, "Top-up cancelled", slog.String("reference", reference))
	return cancelled, nil
}

// ConfirmPayment credits a payment exactly once. Repeating a confirmation returns the
// original PURCHASE entry without writing anything.
func (s *paymentService) ConfirmPayment(ctx context.Context, userID string, amount int64, reference string) (*domain.PageTransaction, error) {
	switch {
	case userID == "":
		return nil, apperrors.NewValidationError("userID", "", "required")
	case reference == "":
		return nil, apperrors.NewValidationError("paymentReference", "", "required")
	case amount <= 0:
		return nil, apperrors.NewValidationError("amount", fmt.Sprint(amount), "must be positive")
	}

	var (
		result  *domain.PageTransaction
		replay  bool
		payment *domain.Payment
	)
	err := s.book.run(ctx, userID, func(ctx context.Context, tx *bookTx) error {
		existing, err := tx.FindPayment(ctx, reference)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			// Payments started outside this service are recorded on first confirmation.
			existing = &domain.Payment{
				Reference: reference,
				UserID:    userID,
				Amount:    amount,
				Status:    domain.PaymentPending,
				CreatedAt: tx.now,
			}
		case err != nil:
			return err
		}

		if existing.UserID != userID || existing.Amount != amount {
			return apperrors.NewConflictError("payment %s does not match the confirmed user or amount", reference)
		}
		switch {
		case existing.Status == domain.PaymentConfirmed:
			if existing.TransactionID == nil {
				return apperrors.NewAppError(500, "confirmed payment has no transaction", fmt.Errorf("reference %s", reference))
			}
			result, err = tx.FindTransactionByID(ctx, *existing.TransactionID)
			replay = true
			payment = existing
			return err
		case existing.Status != domain.PaymentPending:
			return apperrors.NewConflictError("payment %s is %s", reference, existing.Status)
		case existing.IsExpiredAt(tx.now):
			return apperrors.NewConflictError("payment %s expired at %s", reference, existing.ExpiresAt.Format(time.RFC3339))
		}

		txn, err := tx.credit(ctx, domain.Purchase, amount, "page top-up", userID, nil, &reference)
		if err != nil {
			return err
		}
		existing.Status = domain.PaymentConfirmed
		existing.TransactionID = &txn.TransactionID
		existing.LastUpdatedAt = tx.now
		if err := tx.SavePayment(ctx, *existing); err != nil {
			return err
		}
		result = txn
		payment = existing
		return nil
	})
	if err != nil {
		s.LogInfo(ctx, "Payment not confirmed", slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, err
	}

	if s.poller != nil {
		s.poller.Stop(reference)
	}
	if replay {
		s.LogInfo(ctx, "Payment already confirmed", slog.String("reference", reference))
		return result, nil
	}

	paymentsTotal.WithLabelValues(string(domain.PaymentConfirmed)).Inc()
	s.LogInfo(ctx, "Payment confirmed", slog.String("reference", reference), slog.Int64("amount", amount), slog.String("transaction_id", result.TransactionID))
	if s.events != nil {
		s.events.Enqueue(payment.UserID, "payment_confirmed", map[string]any{"reference": reference, "amount": amount})
	}
	return result, nil
}

func (s *paymentService) GetTopUp(ctx context.Context, session domain.Session, reference string) (*domain.Payment, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(session, payment.UserID, "payment", reference); err != nil {
		return nil, err
	}
	return payment, nil
}

// ExpirePayment is a no-op for payments that are no longer pending or not yet due.
func (s *paymentService) ExpirePayment(ctx context.Context, userID string, reference string) (*domain.Payment, error) {
	var result *domain.Payment
	err := s.book.run(ctx, userID, func(ctx context.Context, tx *bookTx) error {
		payment, err := tx.FindPayment(ctx, reference)
		if err != nil {
			return err
		}
		result = payment
		if !payment.IsExpiredAt(tx.now) {
			return nil
		}
		payment.Status = domain.PaymentExpired
		payment.LastUpdatedAt = tx.now
		return tx.SavePayment(ctx, *payment)
	})
	if err != nil {
		return nil, err
	}
	if result.Status == domain.PaymentExpired {
		paymentsTotal.WithLabelValues(string(domain.PaymentExpired)).Inc()
		s.LogInfo(ctx, "Top-up expired", slog.String("reference", reference))
	}
	return result, nil
}

func (s *paymentService) ResumePending(ctx context.Context) error {
	pending, err := s.paymentRepo.ListPendingPayments(ctx)
	if err != nil {
		return err
	}
	now := s.Now()
	for _, p := range pending {
		if p.IsExpiredAt(now) {
			if _, err := s.ExpirePayment(ctx, p.UserID, p.Reference); err != nil {
				s.LogError(ctx, err, "Failed to expire stale payment", slog.String("reference", p.Reference))
			}
			continue
		}
		if s.poller != nil {
			s.poller.Watch(p)
		}
	}
	s.LogInfo(ctx, "Pending payments resumed", slog.Int("count", len(pending)))
	return nil
}

func (s *paymentService) Close() {
	if s.poller != nil {
		s.poller.StopAll()
	}
}
