//go:build integration

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *TokenRepository {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { client.Close() })

	return NewTokenRepository(client)
}

func TestTokenRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.StoreToken(ctx, "tok-a", 9, time.Minute))
	require.NoError(t, repo.StoreToken(ctx, "tok-b", 9, time.Minute))

	userID, err := repo.ValidateToken(ctx, "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "9", userID)

	require.NoError(t, repo.RevokeToken(ctx, "tok-a"))
	_, err = repo.ValidateToken(ctx, "tok-a")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// revoking twice is harmless
	require.NoError(t, repo.RevokeToken(ctx, "tok-a"))

	require.NoError(t, repo.RevokeUserTokens(ctx, 9))
	_, err = repo.ValidateToken(ctx, "tok-b")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
