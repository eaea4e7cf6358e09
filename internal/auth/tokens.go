package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// TokenManager issues and resolves opaque bearer tokens backed by Redis.
type TokenManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(client *redis.Client, ttl time.Duration) *TokenManager {
	return &TokenManager{client: client, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue creates a fresh token for the user and stores it with the TTL.
func (tm *TokenManager) Issue(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	if err := tm.client.Set(ctx, tm.key(token), strconv.FormatInt(userID, 10), tm.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store token: %w", err)
	}
	return token, nil
}

// Resolve maps a bearer token back to the owning user id.
func (tm *TokenManager) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, httpx.ErrUnauthorized
	}
	val, err := tm.client.Get(ctx, tm.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, httpx.ErrUnauthorized
		}
		return 0, fmt.Errorf("auth: resolve token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, httpx.ErrUnauthorized
	}
	return userID, nil
}

// Revoke deletes a token so it can no longer authenticate requests.
func (tm *TokenManager) Revoke(ctx context.Context, token string) error {
	if err := tm.client.Del(ctx, tm.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("auth: revoke token: %w", err)
	}
	return nil
}

func (tm *TokenManager) key(token string) string {
	return "authtoken:" + token
}
