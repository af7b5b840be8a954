package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/core/services"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDocument_RejectsNonPDF(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewDocumentService(store)
	session := domain.Session{UserID: "student-1", Role: domain.RoleStudent}

	_, err := svc.RegisterDocument(context.Background(), session, "notes.txt", "", bytes.NewReader([]byte("just some text")))

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "file", verr.Field)
}

func TestRegisterDocument_RequiresName(t *testing.T) {
	svc := services.NewDocumentService(memory.NewStore())
	session := domain.Session{UserID: "student-1", Role: domain.RoleStudent}

	_, err := svc.RegisterDocument(context.Background(), session, "  ", "", bytes.NewReader(nil))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetDocument_Ownership(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewDocumentService(store)
	doc := seedDocument(store, "student-1", 3)

	got, err := svc.GetDocument(context.Background(), domain.Session{UserID: "student-1", Role: domain.RoleStudent}, doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalPages)

	_, err = svc.GetDocument(context.Background(), domain.Session{UserID: "student-2", Role: domain.RoleStudent}, doc.DocumentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetDocument(context.Background(), domain.Session{UserID: "staff", Role: domain.RoleAdmin}, doc.DocumentID)
	assert.NoError(t, err)
}

func TestPrinterService(t *testing.T) {
	store := memory.NewStore()
	store.PutPrinter(colorPrinter)
	store.PutPrinter(bwPrinter)
	svc := services.NewPrinterService(store)

	printers, err := svc.ListPrinters(context.Background())
	require.NoError(t, err)
	require.Len(t, printers, 2)
	assert.Equal(t, bwPrinter.Name, printers[0].Name)

	_, err = svc.GetPrinter(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBalanceCache_IgnoresOlderSequence(t *testing.T) {
	cache := services.NewBalanceCache(10, 0)

	cache.Set("u", 40, 7)
	cache.Set("u", 90, 3)
	got, ok := cache.Get("u")
	require.True(t, ok)
	assert.Equal(t, int64(40), got)

	cache.Set("u", 25, 8)
	got, _ = cache.Get("u")
	assert.Equal(t, int64(25), got)

	cache.Invalidate("u")
	_, ok = cache.Get("u")
	assert.False(t, ok)

	var nilCache *services.BalanceCache
	nilCache.Set("u", 1, 1)
	_, ok = nilCache.Get("u")
	assert.False(t, ok)
}
