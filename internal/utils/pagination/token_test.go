package pagination

import (
	"encoding/base64"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	at := time.Date(2025, 9, 1, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(at, "job-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, at.Equal(cursor.At), "Timestamp should match after decode")
	assert.Equal(t, "job-42", cursor.ID)

	// Non-UTC timestamps survive the round trip as the same instant
	local := time.Date(2025, 9, 1, 16, 30, 45, 0, time.FixedZone("CEST", 2*3600))
	cursor, err = DecodeCursor(EncodeCursor(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(cursor.At))
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2025-09-01T00:00:00Z"))
	_, err = DecodeCursor(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|job-1"))
	_, err = DecodeCursor(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestCursorBefore(t *testing.T) {
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	c := Cursor{At: at, ID: "m"}

	assert.True(t, c.Before(at.Add(-time.Second), "z"), "older rows come after the cursor")
	assert.False(t, c.Before(at.Add(time.Second), "a"), "newer rows were already returned")
	assert.True(t, c.Before(at, "a"), "ties are broken by descending ID")
	assert.False(t, c.Before(at, "m"), "the cursor row itself is excluded")
}

func TestOffsetAndClampSize(t *testing.T) {
	offset, err := Offset(1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	offset, err = Offset(3, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)
	offset, err = Offset(0, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	_, err = Offset(1<<62, 100)
	assert.Error(t, err, "offset would overflow")
	_, err = Offset(math.MaxInt, 2)
	assert.Error(t, err)
	_, err = Offset(2, 0)
	assert.Error(t, err)

	assert.Equal(t, 20, ClampSize(0, 20, 100))
	assert.Equal(t, 1, ClampSize(-5, 20, 100))
	assert.Equal(t, 100, ClampSize(500, 20, 100))
	assert.Equal(t, 7, ClampSize(7, 20, 100))
}
