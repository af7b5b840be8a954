package printing

import (
	"errors"
	"strconv"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	a3Multiplier     = decimal.NewFromInt(2)
	duplexMultiplier = decimal.RequireFromString("0.5")
)

// ComputeEquivalentPages converts a page count and print options into A4-equivalent pages.
//
// The A3 and duplex multipliers and the copy count are applied in that order and the
// result is rounded up exactly once, after the copies multiplier: 3 duplex pages times
// 2 copies cost 3, not 2*ceil(1.5).
func ComputeEquivalentPages(pageCount int, paperSize domain.PaperSize, duplex bool, copies int) (int64, error) {
	if pageCount < 0 {
		return 0, apperrors.NewValidationError("pageCount", strconv.Itoa(pageCount), "must not be negative")
	}
	if copies < 1 {
		return 0, apperrors.NewValidationError("copies", strconv.Itoa(copies), "must be at least 1")
	}
	if !paperSize.IsValid() {
		return 0, apperrors.NewValidationError("paperSize", string(paperSize), "must be A4 or A3")
	}

	units := decimal.NewFromInt(int64(pageCount))
	if paperSize == domain.A3 {
		units = units.Mul(a3Multiplier)
	}
	if duplex {
		units = units.Mul(duplexMultiplier)
	}
	units = units.Mul(decimal.NewFromInt(int64(copies)))

	return units.Ceil().IntPart(), nil
}

// Quote is the cost breakdown of one print request.
type Quote struct {
	PageCount       int
	EquivalentPages int64
}

// QuoteRequest validates the options of req against a document of totalPages pages and
// prices it. Both the estimate endpoint and the authoritative submission use it, so what
// a user is shown is what they are charged.
func QuoteRequest(req domain.PrintRequest, totalPages int) (Quote, error) {
	if req.Copies < domain.MinCopies || req.Copies > domain.MaxCopies {
		return Quote{}, apperrors.NewValidationError("copies", strconv.Itoa(req.Copies), "must be between 1 and 10")
	}
	if !req.ColorMode.IsValid() {
		return Quote{}, apperrors.NewValidationError("colorMode", string(req.ColorMode), "must be BLACK_WHITE or COLOR")
	}
	if req.ColorPageRange != "" {
		if req.ColorMode != domain.BlackWhite {
			return Quote{}, apperrors.NewValidationError("colorPageRange", req.ColorPageRange, "only allowed with BLACK_WHITE color mode")
		}
		if _, err := ParsePageRange(req.ColorPageRange, totalPages); err != nil {
			var verr *apperrors.ValidationError
			if errors.As(err, &verr) {
				verr.Field = "colorPageRange"
			}
			return Quote{}, err
		}
	}

	pageCount, err := ParsePageRange(req.PageRange, totalPages)
	if err != nil {
		return Quote{}, err
	}
	equivalent, err := ComputeEquivalentPages(pageCount, req.PaperSize, req.Duplex, req.Copies)
	if err != nil {
		return Quote{}, err
	}
	return Quote{PageCount: pageCount, EquivalentPages: equivalent}, nil
}
