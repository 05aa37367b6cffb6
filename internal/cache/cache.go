// Package cache provides short-lived result caches for the search pipeline.
// Values are opaque bytes; callers own the encoding.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"go.uber.org/zap"
)

// Cache stores byte values for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// New returns a Redis-backed cache when redisURL is set, otherwise an
// in-process cache holding at most maxEntries values.
func New(redisURL string, maxEntries int) (Cache, error) {
	if redisURL == "" {
		return NewMemoryCache(maxEntries), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("using redis result cache", zap.String("addr", opts.Addr))
	return NewRedisCache(redis.NewClient(opts)), nil
}

// Key builds a stable cache key from a prefix and any JSON-encodable value.
func Key(prefix string, v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return prefix
	}
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:16])
}
