package printing

import (
	"strconv"
	"strings"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
)

const pageRangeField = "pageRange"

// pageToken is one parsed comma-separated element of a page range expression.
type pageToken struct {
	raw   string
	start int
	end   int
}

// ParsePageRange returns the number of pages selected by spec in a document of maxPages pages.
//
// An empty spec selects the whole document. Otherwise spec is a comma-separated list of
// 1-based pages ("7") and inclusive ranges ("3-9"). The count is the sum of every token's
// length; overlapping tokens are counted once per token.
func ParsePageRange(spec string, maxPages int) (int, error) {
	if maxPages < 1 {
		return 0, apperrors.NewValidationError("totalPages", strconv.Itoa(maxPages), "document must have at least one page")
	}
	if strings.TrimSpace(spec) == "" {
		return maxPages, nil
	}

	tokens, err := tokenize(spec)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, tok := range tokens {
		if tok.start < 1 || tok.start > maxPages {
			return 0, apperrors.NewValidationError(pageRangeField, tok.raw, "page must be between 1 and "+strconv.Itoa(maxPages))
		}
		if tok.end < tok.start {
			return 0, apperrors.NewValidationError(pageRangeField, tok.raw, "range end is before range start")
		}
		if tok.end > maxPages {
			return 0, apperrors.NewValidationError(pageRangeField, tok.raw, "page must be between 1 and "+strconv.Itoa(maxPages))
		}
		count += tok.end - tok.start + 1
	}
	return count, nil
}

// ValidatePageRangeSyntax checks that spec is well formed without knowing the document length.
// Request binding uses it to reject garbage before any document lookup happens.
func ValidatePageRangeSyntax(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	_, err := tokenize(spec)
	return err
}

func tokenize(spec string) ([]pageToken, error) {
	parts := strings.Split(spec, ",")
	tokens := make([]pageToken, 0, len(parts))
	for _, part := range parts {
		raw := strings.TrimSpace(part)
		if raw == "" {
			return nil, apperrors.NewValidationError(pageRangeField, spec, "empty page token")
		}

		lo, hi, isRange := strings.Cut(raw, "-")
		if !isRange {
			n, err := parsePage(raw, raw)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, pageToken{raw: raw, start: n, end: n})
			continue
		}

		start, err := parsePage(lo, raw)
		if err != nil {
			return nil, err
		}
		end, err := parsePage(hi, raw)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, pageToken{raw: raw, start: start, end: end})
	}
	return tokens, nil
}

// parsePage parses a single bound; raw is the whole token, used for error reporting.
func parsePage(s, raw string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.NewValidationError(pageRangeField, raw, "missing page number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, apperrors.NewValidationError(pageRangeField, raw, "not a page number")
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.NewValidationError(pageRangeField, raw, "page number out of range")
	}
	return n, nil
}
