package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "revoked:"

// RedisRevocationStore keeps revoked token hashes in Redis with a TTL matching
// the token's remaining lifetime.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenHash, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to reach revocation store: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reach revocation store: %w", err)
	}
	return n > 0, nil
}
