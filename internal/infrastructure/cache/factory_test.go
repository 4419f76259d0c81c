package cache

import (
	"context"
	"testing"
	"time"

	"github.com/schoolstore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cacheConfig(backend string) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Backend = backend
	cfg.Store.SummaryCacheTTL = time.Minute
	// nothing listens on port 1
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1}
	return cfg
}

func TestNewSummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		c, closer, err := NewSummaryCache(ctx, cacheConfig("none"), zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, c)
		assert.NoError(t, closer())
	})

	t.Run("memory", func(t *testing.T) {
		c, closer, err := NewSummaryCache(ctx, cacheConfig("memory"), zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &InMemorySummaryCache{}, c)
		assert.NoError(t, closer())
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		c, closer, err := NewSummaryCache(ctx, cacheConfig("redis"), zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &InMemorySummaryCache{}, c)
		assert.NoError(t, closer())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := NewSummaryCache(ctx, cacheConfig("memcached"), zap.NewNop())
		assert.Error(t, err)
	})
}
