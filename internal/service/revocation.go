package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// RedisRevocationStore keeps revoked token IDs in redis until the token
// would have expired anyway
type RedisRevocationStore struct {
	redis *redis.Client
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{redis: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.redis.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
