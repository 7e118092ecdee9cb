package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, 42, "alice", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(secret, 1, "bob", TokenTypeAccess, time.Minute)
		require.NoError(t, err)
		_, err = ParseToken([]byte("other"), TokenTypeAccess, token)
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		token, err := GenerateToken(secret, 1, "bob", "refresh", time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(secret, TokenTypeAccess, token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken(secret, 1, "bob", TokenTypeAccess, -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(secret, TokenTypeAccess, token)
		assert.Error(t, err)
	})
}
