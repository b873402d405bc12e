// AngelaMos | 2026
// store.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitsyy/gym-backend/internal/core"
)

// TokenStore holds the short-lived, single-use state of the auth flow:
// pending magic links and revoked access token ids.
type TokenStore interface {
	SaveMagicLink(ctx context.Context, tokenHash, email string, ttl time.Duration) error
	// ConsumeMagicLink returns the email bound to tokenHash and deletes the
	// entry in the same step. Missing or expired entries yield
	// core.ErrTokenInvalid.
	ConsumeMagicLink(ctx context.Context, tokenHash string) (string, error)
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) SaveMagicLink(
	ctx context.Context,
	tokenHash, email string,
	ttl time.Duration,
) error {
	if err := s.client.Set(ctx, magicLinkKey(tokenHash), email, ttl).Err(); err != nil {
		return fmt.Errorf("save magic link: %w: %w", core.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisTokenStore) ConsumeMagicLink(
	ctx context.Context,
	tokenHash string,
) (string, error) {
	email, err := s.client.GetDel(ctx, magicLinkKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("consume magic link: %w", core.ErrTokenInvalid)
	}
	if err != nil {
		return "", fmt.Errorf("consume magic link: %w: %w", core.ErrStoreUnavailable, err)
	}
	return email, nil
}

func (s *redisTokenStore) Blacklist(
	ctx context.Context,
	jti string,
	ttl time.Duration,
) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) IsBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists > 0, nil
}
