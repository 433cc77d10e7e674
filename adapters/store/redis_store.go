package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/ports"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis implementation of the ResultCache interface
type RedisCache struct {
	client *redis.Client
	prefix string
}

const (
	// PrefixResults namespaces cached lookup results
	PrefixResults = "goplus:result:"
	// PrefixAuth namespaces gateway token revocations
	PrefixAuth = "goplus:auth:"
)

// NewRedisCache creates a new Redis cache whose keys all start with prefix
func NewRedisCache(client *redis.Client, prefix string) ports.ResultCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Get returns the cached envelope for key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	return val, nil
}

// Set caches value with expiration
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}
