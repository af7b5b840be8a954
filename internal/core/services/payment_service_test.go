package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/core/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	clock   *fixedClock
	ledger  portssvc.LedgerSvcFacade
	service portssvc.PaymentSvc
	session domain.Session
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.clock = &fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := services.NewBalanceCache(100, time.Minute)
	suite.ledger = services.NewLedgerService(suite.store, suite.store, cache)
	suite.service = services.NewPaymentService(suite.store, suite.store, cache,
		services.WithPaymentExpiry(10*time.Minute),
		services.WithPaymentClock(suite.clock.Now))
	suite.session = domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.service.Close()
}

func (suite *PaymentServiceTestSuite) balance() int64 {
	b, err := suite.ledger.GetBalance(context.Background(), suite.session.UserID)
	suite.Require().NoError(err)
	return b.CurrentA4
}

func (suite *PaymentServiceTestSuite) TestStartTopUp_CreatesPendingPayment() {
	payment, err := suite.service.StartTopUp(context.Background(), suite.session, 50)

	suite.Require().NoError(err)
	suite.Regexp(`^PQ-[0-9A-F]{32}$`, payment.Reference)
	suite.Equal(domain.PaymentPending, payment.Status)
	suite.Equal(int64(50), payment.Amount)
	suite.Equal(suite.clock.now.Add(10*time.Minute), payment.ExpiresAt)
	suite.Equal(int64(0), suite.balance())

	_, err = suite.service.StartTopUp(context.Background(), suite.session, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_IsIdempotent() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	first, err := suite.service.ConfirmPayment(ctx, suite.session.UserID, 50, payment.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.Purchase, first.Type)
	suite.Equal(int64(50), first.BalanceAfter)
	suite.Require().NotNil(first.PaymentReference)
	suite.Equal(payment.Reference, *first.PaymentReference)

	again, err := suite.service.ConfirmPayment(ctx, suite.session.UserID, 50, payment.Reference)
	suite.Require().NoError(err)
	suite.Equal(first.TransactionID, again.TransactionID)
	suite.Equal(int64(50), suite.balance())

	history, err := suite.ledger.History(ctx, suite.session.UserID, dto.ListTransactionsParams{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(1), history.Total)

	stored, err := suite.service.GetTopUp(ctx, suite.session, payment.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentConfirmed, stored.Status)
	suite.Require().NotNil(stored.TransactionID)
	suite.Equal(first.TransactionID, *stored.TransactionID)
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_UnknownReferenceIsRecorded() {
	ctx := context.Background()

	txn, err := suite.service.ConfirmPayment(ctx, suite.session.UserID, 30, "EXT-123")

	suite.Require().NoError(err)
	suite.Equal(int64(30), txn.BalanceAfter)
	stored, err := suite.service.GetTopUp(ctx, suite.session, "EXT-123")
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentConfirmed, stored.Status)
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_ConcurrentRepliesCreditOnce() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	for _, reference := range []string{payment.Reference, "EXT-RACE"} {
		const callers = 16
		var wg sync.WaitGroup
		ids := make([]string, callers)
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				txn, err := suite.service.ConfirmPayment(ctx, suite.session.UserID, 50, reference)
				errs[i] = err
				if txn != nil {
					ids[i] = txn.TransactionID
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			suite.Require().NoError(errs[i], reference)
			suite.Equal(ids[0], ids[i], "every caller sees the same credit for %s", reference)
		}
	}

	history, err := suite.ledger.History(ctx, suite.session.UserID, dto.ListTransactionsParams{Page: 1, Size: 100})
	suite.Require().NoError(err)
	purchases := 0
	for _, txn := range history.Transactions {
		if txn.Type == string(domain.Purchase) {
			purchases++
		}
	}
	suite.Equal(2, purchases)
	suite.Equal(int64(2), history.Total)
	suite.Equal(int64(100), suite.balance())
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_MismatchIsConflict() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	_, err = suite.service.ConfirmPayment(ctx, suite.session.UserID, 40, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.ConfirmPayment(ctx, uuid.NewString(), 50, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.Equal(int64(0), suite.balance())
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_CancelledIsConflict() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	cancelled, err := suite.service.CancelTopUp(ctx, suite.session, payment.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCancelled, cancelled.Status)

	_, err = suite.service.ConfirmPayment(ctx, suite.session.UserID, 50, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.CancelTopUp(ctx, suite.session, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(int64(0), suite.balance())
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_AfterExpiryIsConflict() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	suite.clock.Advance(11 * time.Minute)
	_, err = suite.service.ConfirmPayment(ctx, suite.session.UserID, 50, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrConflict)

	expired, err := suite.service.ExpirePayment(ctx, suite.session.UserID, payment.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentExpired, expired.Status)
	suite.Equal(int64(0), suite.balance())
}

func (suite *PaymentServiceTestSuite) TestExpirePayment_NotDueIsNoop() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	result, err := suite.service.ExpirePayment(ctx, suite.session.UserID, payment.Reference)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, result.Status)
}

func (suite *PaymentServiceTestSuite) TestGetTopUp_OtherUserSeesNotFound() {
	ctx := context.Background()
	payment, err := suite.service.StartTopUp(ctx, suite.session, 50)
	suite.Require().NoError(err)

	_, err = suite.service.GetTopUp(ctx, domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.CancelTopUp(ctx, domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}, payment.Reference)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestResumePending_ExpiresStalePayments() {
	ctx := context.Background()
	stale, err := suite.service.StartTopUp(ctx, suite.session, 10)
	suite.Require().NoError(err)
	suite.clock.Advance(5 * time.Minute)
	fresh, err := suite.service.StartTopUp(ctx, suite.session, 20)
	suite.Require().NoError(err)
	suite.clock.Advance(6 * time.Minute)

	suite.Require().NoError(suite.service.ResumePending(ctx))

	got, err := suite.service.GetTopUp(ctx, suite.session, stale.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentExpired, got.Status)
	got, err = suite.service.GetTopUp(ctx, suite.session, fresh.Reference)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, got.Status)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

// fakeGateway reports a fixed status per reference.
type fakeGateway struct {
	mu       sync.Mutex
	statuses map[string]domain.GatewayPayment
	calls    int
}

func (g *fakeGateway) set(p domain.GatewayPayment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[p.Reference] = p
}

func (g *fakeGateway) CheckPayment(_ context.Context, reference string) (*domain.GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if p, ok := g.statuses[reference]; ok {
		return &p, nil
	}
	return &domain.GatewayPayment{Reference: reference, Status: domain.GatewayPending}, nil
}

func TestPaymentPoller_ConfirmsPaidPayment(t *testing.T) {
	store := memory.NewStore()
	cache := services.NewBalanceCache(10, time.Minute)
	gateway := &fakeGateway{statuses: make(map[string]domain.GatewayPayment)}
	ledger := services.NewLedgerService(store, store, cache)
	svc := services.NewPaymentService(store, store, cache,
		services.WithPaymentExpiry(time.Hour),
		services.WithGatewayPolling(gateway, 10*time.Millisecond, nil))
	defer svc.Close()

	session := domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}
	payment, err := svc.StartTopUp(context.Background(), session, 25)
	require.NoError(t, err)

	gateway.set(domain.GatewayPayment{Reference: payment.Reference, Status: domain.GatewayPaid, Amount: 25})

	assert.Eventually(t, func() bool {
		p, err := svc.GetTopUp(context.Background(), session, payment.Reference)
		return err == nil && p.Status == domain.PaymentConfirmed
	}, 2*time.Second, 10*time.Millisecond)

	balance, err := ledger.GetBalance(context.Background(), session.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance.CurrentA4)
}

func TestPaymentPoller_ExpiresUnpaidPayment(t *testing.T) {
	store := memory.NewStore()
	gateway := &fakeGateway{statuses: make(map[string]domain.GatewayPayment)}
	svc := services.NewPaymentService(store, store, nil,
		services.WithPaymentExpiry(50*time.Millisecond),
		services.WithGatewayPolling(gateway, 10*time.Millisecond, nil))
	defer svc.Close()

	session := domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}
	payment, err := svc.StartTopUp(context.Background(), session, 25)
	require.NoError(t, err)
	gateway.set(domain.GatewayPayment{Reference: payment.Reference, Status: domain.GatewayFailed})

	assert.Eventually(t, func() bool {
		p, err := svc.GetTopUp(context.Background(), session, payment.Reference)
		return err == nil && p.Status == domain.PaymentExpired
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPaymentPoller_StopAllIgnoresLaterWatches(t *testing.T) {
	gateway := &fakeGateway{statuses: make(map[string]domain.GatewayPayment)}
	store := memory.NewStore()
	settler := services.NewPaymentService(store, store, nil)
	poller := services.NewPaymentPoller(gateway, settler, time.Hour, nil)

	poller.Watch(domain.Payment{Reference: "A", UserID: "u", Status: domain.PaymentPending, ExpiresAt: time.Now().Add(time.Hour)})
	poller.Watch(domain.Payment{Reference: "A", UserID: "u", Status: domain.PaymentPending, ExpiresAt: time.Now().Add(time.Hour)})
	assert.Equal(t, 1, poller.Active())

	poller.Stop("A")
	assert.Equal(t, 0, poller.Active())

	poller.Watch(domain.Payment{Reference: "B", UserID: "u", Status: domain.PaymentPending, ExpiresAt: time.Now().Add(time.Hour)})
	poller.StopAll()
	assert.Equal(t, 0, poller.Active())

	poller.Watch(domain.Payment{Reference: "C", UserID: "u", Status: domain.PaymentPending, ExpiresAt: time.Now().Add(time.Hour)})
	assert.Equal(t, 0, poller.Active())
}
