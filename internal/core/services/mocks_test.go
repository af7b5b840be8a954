package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/core/services"
	"github.com/SscSPs/print_quota_service/internal/platform/config"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

// --- Mock PrinterRepository ---
type MockPrinterRepository struct {
	mock.Mock
}

func (m *MockPrinterRepository) FindPrinterByID(ctx context.Context, printerID string) (*domain.Printer, error) {
	args := m.Called(ctx, printerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Printer), args.Error(1)
}

func (m *MockPrinterRepository) ListPrinters(ctx context.Context) ([]domain.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Printer), args.Error(1)
}

func TestGetDocument_PropagatesStorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDocumentRepository)
	storageErr := apperrors.NewAppError(http.StatusInternalServerError, "failed to find document", errors.New("connection reset"))
	repo.On("FindDocumentByID", ctx, "doc-1").Return(nil, storageErr).Once()

	svc := services.NewDocumentService(repo)
	_, err := svc.GetDocument(ctx, domain.Session{UserID: "student-1", Role: domain.RoleStudent}, "doc-1")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	repo.AssertExpectations(t)
}

func TestGetDocument_NoSessionSkipsRepository(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := services.NewDocumentService(repo)

	_, err := svc.GetDocument(context.Background(), domain.Session{}, "doc-1")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "FindDocumentByID", mock.Anything, mock.Anything)
}

func TestPrinterService_DelegatesToRegistry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPrinterRepository)
	repo.On("FindPrinterByID", ctx, bwPrinter.PrinterID).Return(&bwPrinter, nil).Once()
	repo.On("ListPrinters", ctx).Return(nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list printers", nil)).Once()

	svc := services.NewPrinterService(repo)

	got, err := svc.GetPrinter(ctx, bwPrinter.PrinterID)
	require.NoError(t, err)
	assert.True(t, got.SupportsDuplex)

	_, err = svc.ListPrinters(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	repo.AssertExpectations(t)
}

func TestNewServiceContainer_WithoutOptionalDeps(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{BalanceCacheSize: 10, BalanceCacheTTL: time.Minute, PaymentExpiry: time.Minute}
	store := memory.NewStore()
	store.PutPrinter(bwPrinter)

	container := services.NewServiceContainer(cfg, store.Provider(), services.ContainerDeps{})
	defer container.Payment.Close()

	session := domain.Session{UserID: "student-1", Role: domain.RoleStudent}
	doc := seedDocument(store, session.UserID, 2)
	_, err := container.Ledger.Credit(ctx, session.UserID, domain.Allocate, 10, "", "admin")
	require.NoError(t, err)

	jobs, err := container.Submission.Submit(ctx, session, []domain.PrintRequest{bwRequest(doc.DocumentID, 1)})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	payment, err := container.Payment.StartTopUp(ctx, session, 5)
	require.NoError(t, err)
	_, err = container.Payment.ConfirmPayment(ctx, session.UserID, 5, payment.Reference)
	require.NoError(t, err)

	balance, err := container.Ledger.GetBalance(ctx, session.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(10-2+5), balance.CurrentA4)
}
