package printing

import (
	"testing"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEquivalentPages(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		paperSize domain.PaperSize
		duplex    bool
		copies    int
		want      int64
	}{
		{name: "A4 simplex", pageCount: 10, paperSize: domain.A4, copies: 1, want: 10},
		{name: "A3 doubles", pageCount: 10, paperSize: domain.A3, copies: 1, want: 20},
		{name: "duplex halves", pageCount: 10, paperSize: domain.A4, duplex: true, copies: 1, want: 5},
		{name: "single ceiling after copies", pageCount: 3, paperSize: domain.A4, duplex: true, copies: 2, want: 3},
		{name: "odd duplex rounds up", pageCount: 3, paperSize: domain.A4, duplex: true, copies: 1, want: 2},
		{name: "A3 duplex cancels out", pageCount: 7, paperSize: domain.A3, duplex: true, copies: 3, want: 21},
		{name: "zero pages", pageCount: 0, paperSize: domain.A4, copies: 4, want: 0},
		{name: "max copies", pageCount: 1, paperSize: domain.A4, duplex: true, copies: 10, want: 5},
		{name: "odd copies of duplex", pageCount: 1, paperSize: domain.A4, duplex: true, copies: 3, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeEquivalentPages(tt.pageCount, tt.paperSize, tt.duplex, tt.copies)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeEquivalentPages_Errors(t *testing.T) {
	_, err := ComputeEquivalentPages(-1, domain.A4, false, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ComputeEquivalentPages(1, domain.A4, false, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ComputeEquivalentPages(1, "LETTER", false, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputeEquivalentPages_IsPure(t *testing.T) {
	for i := 0; i < 5; i++ {
		got, err := ComputeEquivalentPages(3, domain.A4, true, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got)
	}
}

func TestQuoteRequest(t *testing.T) {
	req := domain.PrintRequest{
		PaperSize: domain.A3,
		Duplex:    true,
		Copies:    2,
		PageRange: "1-5,10",
		ColorMode: domain.BlackWhite,
	}

	q, err := QuoteRequest(req, 12)
	require.NoError(t, err)
	assert.Equal(t, 6, q.PageCount)
	assert.Equal(t, int64(12), q.EquivalentPages)
}

func TestQuoteRequest_Validation(t *testing.T) {
	base := domain.PrintRequest{PaperSize: domain.A4, Copies: 1, ColorMode: domain.BlackWhite}

	tooMany := base
	tooMany.Copies = 11
	_, err := QuoteRequest(tooMany, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	noCopies := base
	noCopies.Copies = 0
	_, err = QuoteRequest(noCopies, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badMode := base
	badMode.ColorMode = "SEPIA"
	_, err = QuoteRequest(badMode, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	colorSubsetOnColorJob := base
	colorSubsetOnColorJob.ColorMode = domain.Color
	colorSubsetOnColorJob.ColorPageRange = "1"
	_, err = QuoteRequest(colorSubsetOnColorJob, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	colorSubsetOutOfRange := base
	colorSubsetOutOfRange.ColorPageRange = "4-9"
	_, err = QuoteRequest(colorSubsetOutOfRange, 5)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "colorPageRange", verr.Field)
}
