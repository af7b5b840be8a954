package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/utils/pagination"
)

const (
	defaultHistorySize = 20
	maxHistorySize     = 100
)

// ledgerService implements portssvc.LedgerSvcFacade
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	cache      *BalanceCache
	book       *ledgerBook
}

// NewLedgerService creates a new ledger service. The cache may be nil.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, uow portsrepo.UnitOfWork, cache *BalanceCache, options ...Option) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
	svc.apply(options)
	svc.book = newLedgerBook(uow, cache, svc.Now)
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (*domain.PageBalance, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "", "required")
	}
	if balance, ok := s.cache.Get(userID); ok {
		return &domain.PageBalance{UserID: userID, CurrentA4: balance}, nil
	}

	balance, sequence, err := s.ledgerRepo.FindBalance(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance", slog.String("user_id", userID))
		return nil, err
	}
	s.cache.Set(userID, balance, sequence)
	return &domain.PageBalance{UserID: userID, CurrentA4: balance}, nil
}

func (s *ledgerService) History(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.TransactionHistoryResponse, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "", "required")
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := pagination.ClampSize(params.Size, defaultHistorySize, maxHistorySize)

	offset, err := pagination.Offset(page, size)
	if err != nil {
		return nil, apperrors.NewValidationError("page", strconv.Itoa(page), "out of range")
	}

	txns, total, err := s.ledgerRepo.ListTransactionsByUser(ctx, userID, size, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	resp := dto.ToTransactionHistoryResponse(txns, page, size, total)
	return &resp, nil
}

func (s *ledgerService) Credit(ctx context.Context, userID string, txnType domain.PageTransactionType, amount int64, note string, createdBy string) (*domain.PageTransaction, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "", "required")
	}
	// Refunds are only ever issued by cancellation.
	if txnType != domain.Allocate && txnType != domain.Purchase {
		return nil, apperrors.NewValidationError("type", string(txnType), "must be ALLOCATE or PURCHASE")
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", fmt.Sprint(amount), "must be positive")
	}

	var result *domain.PageTransaction
	err := s.book.run(ctx, userID, func(ctx context.Context, tx *bookTx) error {
		txn, err := tx.credit(ctx, txnType, amount, note, createdBy, nil, nil)
		result = txn
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to credit pages", slog.String("user_id", userID), slog.String("type", string(txnType)))
		return nil, err
	}

	s.LogInfo(ctx, "Pages credited",
		slog.String("user_id", userID),
		slog.String("type", string(txnType)),
		slog.Int64("amount", amount),
		slog.Int64("balance_after", result.BalanceAfter))
	return result, nil
}

func (s *ledgerService) Debit(ctx context.Context, userID string, amount int64, referenceJobID string, note string, createdBy string) (*domain.PageTransaction, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "", "required")
	}

	var result *domain.PageTransaction
	err := s.book.run(ctx, userID, func(ctx context.Context, tx *bookTx) error {
		txn, err := tx.debit(ctx, amount, referenceJobID, note, createdBy)
		result = txn
		return err
	})
	if err != nil {
		s.LogInfo(ctx, "Debit rejected", slog.String("user_id", userID), slog.Int64("amount", amount), slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Pages debited",
		slog.String("user_id", userID),
		slog.Int64("amount", amount),
		slog.String("reference_job_id", referenceJobID),
		slog.Int64("balance_after", result.BalanceAfter))
	return result, nil
}
