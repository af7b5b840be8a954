package pagination

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor marks the last row of a page in a (timestamp DESC, id DESC) ordering.
type Cursor struct {
	At time.Time
	ID string
}

// EncodeCursor creates an opaque token from the timestamp and ID of the last row returned.
func EncodeCursor(at time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", at.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	at, id, ok := strings.Cut(string(decodedBytes), "|")
	if !ok || id == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	parsed, err := time.Parse(timeFormat, at)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return Cursor{At: parsed, ID: id}, nil
}

// Before reports whether a row sorts strictly after the cursor in newest-first order.
func (c Cursor) Before(at time.Time, id string) bool {
	if at.Equal(c.At) {
		return id < c.ID
	}
	return at.Before(c.At)
}

// Offset converts a 1-based page number and page size into a row offset.
// Pages whose offset does not fit in an int are rejected.
func Offset(page, size int) (int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return 0, fmt.Errorf("invalid page size %d", size)
	}
	if page-1 > math.MaxInt/size {
		return 0, fmt.Errorf("page %d out of range for size %d", page, size)
	}
	return (page - 1) * size, nil
}

// ClampSize bounds a requested page size to [1, max], substituting def for zero.
func ClampSize(size, def, max int) int {
	switch {
	case size == 0:
		return def
	case size < 1:
		return 1
	case size > max:
		return max
	}
	return size
}
