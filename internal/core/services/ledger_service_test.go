package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/core/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	cache   *services.BalanceCache
	service portssvc.LedgerSvcFacade
	userID  string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.cache = services.NewBalanceCache(100, 0)
	suite.service = services.NewLedgerService(suite.store, suite.store, suite.cache)
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) TestGetBalance_NoHistoryIsZero() {
	balance, err := suite.service.GetBalance(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, balance.UserID)
	suite.Equal(int64(0), balance.CurrentA4)
}

func (suite *LedgerServiceTestSuite) TestRunningBalanceAcrossEntryTypes() {
	ctx := context.Background()
	admin := uuid.NewString()

	allocated, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 100, "term quota", admin)
	suite.Require().NoError(err)
	suite.Equal(int64(100), allocated.BalanceAfter)
	suite.Equal(admin, allocated.CreatedBy)

	debited, err := suite.service.Debit(ctx, suite.userID, 30, "batch-1", "print", suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(-30), debited.Delta)
	suite.Equal(int64(70), debited.BalanceAfter)
	suite.Require().NotNil(debited.ReferenceJobID)
	suite.Equal("batch-1", *debited.ReferenceJobID)

	purchased, err := suite.service.Credit(ctx, suite.userID, domain.Purchase, 20, "", suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(90), purchased.BalanceAfter)

	suite.Less(allocated.Sequence, debited.Sequence)
	suite.Less(debited.Sequence, purchased.Sequence)

	balance, err := suite.service.GetBalance(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(90), balance.CurrentA4)

	history, err := suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(3), history.Total)
	suite.Require().Len(history.Transactions, 3)
	suite.Equal(string(domain.Purchase), history.Transactions[0].Type)
	suite.Equal(string(domain.Deduct), history.Transactions[1].Type)
	suite.Equal(string(domain.Allocate), history.Transactions[2].Type)
}

func (suite *LedgerServiceTestSuite) TestDebit_InsufficientBalanceWritesNothing() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 10, "", "admin")
	suite.Require().NoError(err)

	txn, err := suite.service.Debit(ctx, suite.userID, 12, "batch-1", "", suite.userID)

	suite.Nil(txn)
	var insufficient *apperrors.InsufficientBalanceError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(int64(10), insufficient.Balance)
	suite.Equal(int64(12), insufficient.Required)

	balance, err := suite.service.GetBalance(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(10), balance.CurrentA4)

	history, err := suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(1), history.Total)
}

func (suite *LedgerServiceTestSuite) TestDebit_ExactBalanceReachesZero() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 12, "", "admin")
	suite.Require().NoError(err)

	txn, err := suite.service.Debit(ctx, suite.userID, 12, "batch-1", "", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), txn.BalanceAfter)
}

func (suite *LedgerServiceTestSuite) TestCredit_Validation() {
	ctx := context.Background()

	_, err := suite.service.Credit(ctx, suite.userID, domain.Refund, 5, "", "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Credit(ctx, suite.userID, domain.Allocate, 0, "", "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Credit(ctx, "", domain.Allocate, 5, "", "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestDebit_RequiresReference() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 10, "", "admin")
	suite.Require().NoError(err)

	_, err = suite.service.Debit(ctx, suite.userID, 5, "", "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestHistory_Paging() {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, int64(i), "", "admin")
		suite.Require().NoError(err)
	}

	page2, err := suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 2, Size: 2})

	suite.Require().NoError(err)
	suite.Equal(int64(5), page2.Total)
	suite.Require().Len(page2.Transactions, 2)
	suite.Equal(int64(3), page2.Transactions[0].Delta)
	suite.Equal(int64(2), page2.Transactions[1].Delta)
}

func (suite *LedgerServiceTestSuite) TestHistory_HugePageIsValidationError() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 5, "", "admin")
	suite.Require().NoError(err)

	var verr *apperrors.ValidationError
	suite.Require().NotPanics(func() {
		_, err = suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 1 << 62, Size: 100})
	})
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("page", verr.Field)
}

func (suite *LedgerServiceTestSuite) TestHistory_PageBeyondEndIsEmpty() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 5, "", "admin")
	suite.Require().NoError(err)

	resp, err := suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 50, Size: 10})

	suite.Require().NoError(err)
	suite.Equal(int64(1), resp.Total)
	suite.Empty(resp.Transactions)
}

func (suite *LedgerServiceTestSuite) TestConcurrentDebitsNeverOverdraw() {
	ctx := context.Background()
	_, err := suite.service.Credit(ctx, suite.userID, domain.Allocate, 50, "", "admin")
	suite.Require().NoError(err)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.Debit(ctx, suite.userID, 5, uuid.NewString(), "", suite.userID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case apperrorsIsInsufficient(err):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(10), succeeded.Load())
	suite.Equal(int32(10), rejected.Load())

	balance, err := suite.service.GetBalance(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), balance.CurrentA4)

	history, err := suite.service.History(ctx, suite.userID, dto.ListTransactionsParams{Page: 1, Size: 100})
	suite.Require().NoError(err)
	suite.Equal(int64(11), history.Total)
	for _, txn := range history.Transactions {
		suite.GreaterOrEqual(txn.BalanceAfter, int64(0))
	}
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
