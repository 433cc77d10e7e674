package ports

import (
	"context"
	"time"
)

// ResultCache stores encoded envelopes of completed lookups
type ResultCache interface {
	// Get returns core.ErrCacheMiss when key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
