package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

func newTestTokenManager(t *testing.T) (*TokenManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenManager(client, time.Hour), mr
}

func TestTokenIssueAndResolve(t *testing.T) {
	tm, _ := newTestTokenManager(t)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tm.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestTokenResolveUnknown(t *testing.T) {
	tm, _ := newTestTokenManager(t)

	_, err := tm.Resolve(context.Background(), "nope")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)

	_, err = tm.Resolve(context.Background(), "")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestTokenExpiry(t *testing.T) {
	tm, mr := newTestTokenManager(t)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = tm.Resolve(ctx, token)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestTokenRevoke(t *testing.T) {
	tm, _ := newTestTokenManager(t)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(ctx, token))

	_, err = tm.Resolve(ctx, token)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}
