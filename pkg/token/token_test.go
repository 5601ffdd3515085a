package token_test

import (
	"testing"
	"time"

	"jobsite-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIssueAndValidatePair(t *testing.T) {
	svc := token.NewService("access-secret", "refresh-secret", time.Minute, time.Hour)
	uid := uuid.New()

	pair, err := svc.IssuePair(uid, "jane@example.com", "CANDIDATE")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := svc.ValidateAccess(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, uid, claims.UserUID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "CANDIDATE", claims.Role)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := svc.ValidateRefresh(pair.Refresh)
	assert.NoError(t, err)
	assert.Equal(t, uid, refreshClaims.UserUID)
}

func TestTokenTypeConfusion(t *testing.T) {
	svc := token.NewService("access-secret", "refresh-secret", time.Minute, time.Hour)
	pair, err := svc.IssuePair(uuid.New(), "jane@example.com", "CANDIDATE")
	assert.NoError(t, err)

	_, err = svc.ValidateAccess(pair.Refresh)
	assert.Error(t, err)
	_, err = svc.ValidateRefresh(pair.Access)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	svc := token.NewService("access-secret", "refresh-secret", time.Nanosecond, time.Hour)
	pair, err := svc.IssuePair(uuid.New(), "jane@example.com", "CANDIDATE")
	assert.NoError(t, err)

	_, err = svc.ValidateAccess(pair.Access)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	svc := token.NewService("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := token.NewService("different", "different", time.Minute, time.Hour)

	pair, err := svc.IssuePair(uuid.New(), "jane@example.com", "CANDIDATE")
	assert.NoError(t, err)

	_, err = other.ValidateAccess(pair.Access)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := token.HashPassword("supersecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, token.CheckPassword("supersecret", hash))
	assert.False(t, token.CheckPassword("wrong", hash))
}

func TestGenerateResetToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := token.GenerateResetToken()
		assert.NoError(t, err)
		assert.Len(t, tok, 32)
		assert.False(t, seen[tok], "tokens must not repeat")
		seen[tok] = true
	}
}
