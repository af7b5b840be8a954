package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// RandomReference returns prefix followed by lengthInBytes random bytes in upper-case hex,
// e.g. RandomReference("PQ-", 16) yields a 35 character payment reference.
func RandomReference(prefix string, lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return prefix + strings.ToUpper(hex.EncodeToString(b)), nil
}
