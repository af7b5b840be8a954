package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := utils.IssueSessionToken("student-1", domain.RoleAdmin, "secret", "issuer", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseSessionToken(token, "secret", "issuer")
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, err = utils.ParseSessionToken(token, "other-secret", "issuer")
	assert.Error(t, err)

	_, err = utils.ParseSessionToken(token, "secret", "someone-else")
	assert.Error(t, err)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := utils.IssueSessionToken("student-1", domain.RoleStudent, "secret", "", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken(token, "secret", "")
	assert.Error(t, err)
}

func TestServiceKey(t *testing.T) {
	hash, err := utils.HashServiceKey("k3y")
	require.NoError(t, err)

	assert.True(t, utils.CheckServiceKey("k3y", hash))
	assert.False(t, utils.CheckServiceKey("key", hash))
}

func TestRandomReference(t *testing.T) {
	ref, err := utils.RandomReference("PQ-", 16)
	require.NoError(t, err)
	assert.Regexp(t, `^PQ-[0-9A-F]{32}$`, ref)

	other, err := utils.RandomReference("PQ-", 16)
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)

	_, err = utils.RandomReference("PQ-", 0)
	assert.Error(t, err)
}

func TestPosthogWrapper_NilSafe(t *testing.T) {
	var w *utils.PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	w.Enqueue("u", "event", nil)
	w.Close()
}
