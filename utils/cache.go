package utils

import (
	"context"
	"fmt"
	"time"

	"tourhub/config"

	"github.com/go-redis/redis/v8"
)

// NewAuthCacheClient connects to the Redis database reserved for session
// revocation. It returns nil, nil when Redis is not configured.
func NewAuthCacheClient(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (auth cache): %w", err)
	}
	return client, nil
}
