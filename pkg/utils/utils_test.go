package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", string(hash))
	assert.True(t, CheckPassword("s3cret-pass", string(hash)))
	assert.False(t, CheckPassword("wrong-pass", string(hash)))
	assert.False(t, CheckPassword("s3cret-pass", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("42", "alice")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateJWT("1", "bob")
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
