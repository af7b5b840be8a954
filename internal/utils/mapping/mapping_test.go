package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobMapping_NullableColumns(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	pending := domain.PrintJob{
		JobID:   "job-1",
		BatchID: "batch-1",
		UserID:  "u1",
		Request: domain.PrintRequest{DocumentID: "d1", PrinterID: "p1", PaperSize: domain.A3, Duplex: true, Copies: 2, PageRange: "1-3", ColorMode: domain.BlackWhite, ColorPageRange: "2"},
		Status:  domain.JobPending, EquivalentPagesCharged: 6, SubmittedAt: now, LastUpdatedAt: now,
	}

	m := ToModelPrintJob(pending)
	assert.False(t, m.CompletedAt.Valid)
	assert.False(t, m.ErrorMessage.Valid)
	assert.Equal(t, "A3", m.PaperSize)
	assert.Equal(t, pending, ToDomainPrintJob(m))

	msg := "paper jam"
	failed := pending
	failed.Status = domain.JobFailed
	failed.CompletedAt = &now
	failed.ErrorMessage = &msg

	m = ToModelPrintJob(failed)
	assert.True(t, m.CompletedAt.Valid)
	assert.Equal(t, "paper jam", m.ErrorMessage.String)
	assert.Equal(t, failed, ToDomainPrintJob(m))
}

func TestPaymentMapping_ZeroExpiryIsNull(t *testing.T) {
	p := domain.Payment{Reference: "ref", UserID: "u1", Amount: 10, Status: domain.PaymentConfirmed}
	m := ToModelPayment(p)
	assert.False(t, m.ExpiresAt.Valid)
	assert.True(t, ToDomainPayment(m).ExpiresAt.IsZero())
}
