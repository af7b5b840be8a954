package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashServiceKey hashes a collaborator API key for PAYMENT_SERVICE_KEY_HASH.
func HashServiceKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckServiceKey compares a presented API key with its bcrypt hash.
func CheckServiceKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
