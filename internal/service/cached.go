package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/windoze95/recipefinder-api/internal/cache"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/metrics"
	"github.com/windoze95/recipefinder-api/internal/models"
	"go.uber.org/zap"
)

// cachedItems returns the item list cached under key, or loads, stores and
// returns it. A nil cache or a zero ttl disables caching. Empty results are
// not cached so a transient source outage is retried on the next request.
func cachedItems(ctx context.Context, c cache.Cache, name, key string, ttl time.Duration, load func() []models.MenuItem) []models.MenuItem {
	if c == nil || ttl <= 0 {
		return load()
	}

	if data, ok := c.Get(ctx, key); ok {
		var items []models.MenuItem
		if err := json.Unmarshal(data, &items); err == nil {
			metrics.ObserveCacheLookup(name, true)
			return items
		}
		logger.Get().Warn("discarding unreadable cache entry", zap.String("cache", name), zap.String("key", key))
	}
	metrics.ObserveCacheLookup(name, false)

	items := load()
	if len(items) == 0 {
		return items
	}
	if data, err := json.Marshal(items); err == nil {
		c.Set(ctx, key, data, ttl)
	}
	return items
}
