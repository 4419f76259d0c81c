// Package cache holds the sales summary caches
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appstore "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Closer releases what the factory opened
type Closer func() error

// NewSummaryCache builds the cache selected by cfg.Cache.Backend. A redis
// backend that cannot be reached falls back to memory with a warning. The
// "none" backend returns a nil cache, which the summary service accepts.
func NewSummaryCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (appstore.SummaryCache, Closer, error) {
	noop := func() error { return nil }
	ttl := cfg.Store.SummaryCacheTTL

	switch cfg.Cache.Backend {
	case "none":
		logger.Info("sales summary cache disabled")
		return nil, noop, nil
	case "memory", "":
		c := NewInMemorySummaryCache(ttl)
		return c, func() error { c.Stop(); return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			logger.Warn("Redis unavailable, falling back to in-memory summary cache",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Error(err),
			)
			c := NewInMemorySummaryCache(ttl)
			return c, func() error { c.Stop(); return nil }, nil
		}
		logger.Info("using Redis summary cache", zap.String("addr", cfg.Redis.Addr()))
		return NewRedisSummaryCache(client, ttl, logger), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

var (
	_ appstore.SummaryCache = (*RedisSummaryCache)(nil)
	_ appstore.SummaryCache = (*InMemorySummaryCache)(nil)
)
