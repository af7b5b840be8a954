package domain_test

import (
	"testing"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.PrintJobStatus
		to   domain.PrintJobStatus
		want bool
	}{
		{domain.JobPending, domain.JobPrinting, true},
		{domain.JobPending, domain.JobCancelled, true},
		{domain.JobPending, domain.JobCompleted, false},
		{domain.JobPrinting, domain.JobCompleted, true},
		{domain.JobPrinting, domain.JobFailed, true},
		{domain.JobPrinting, domain.JobCancelled, false},
		{domain.JobCompleted, domain.JobFailed, false},
		{domain.JobCancelled, domain.JobPending, false},
		{domain.JobFailed, domain.JobPrinting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPrintJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.JobPending.IsTerminal())
	assert.False(t, domain.JobPrinting.IsTerminal())
	assert.True(t, domain.JobCompleted.IsTerminal())
	assert.True(t, domain.JobFailed.IsTerminal())
	assert.True(t, domain.JobCancelled.IsTerminal())
}

func TestPrinter_SupportsSize(t *testing.T) {
	p := domain.Printer{SupportedSizes: []domain.PaperSize{domain.A4}}
	assert.True(t, p.SupportsSize(domain.A4))
	assert.False(t, p.SupportsSize(domain.A3))
}

func TestPrintRequest_WantsColor(t *testing.T) {
	assert.False(t, domain.PrintRequest{ColorMode: domain.BlackWhite}.WantsColor())
	assert.True(t, domain.PrintRequest{ColorMode: domain.Color}.WantsColor())
	assert.True(t, domain.PrintRequest{ColorMode: domain.BlackWhite, ColorPageRange: "1-2"}.WantsColor())
}
