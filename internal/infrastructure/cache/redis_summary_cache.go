package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/schoolstore/backend/internal/domain/store"
	"go.uber.org/zap"
)

const (
	summaryKeyPrefix     = "store_summary"
	defaultScanBatchSize = 100
	defaultSummaryTTL    = 5 * time.Minute
)

// RedisSummaryCache stores sales summaries as JSON under
// store_summary:{tenant}:{key}
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSummaryCache wraps an existing client. The caller owns the client.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

func tenantPrefix(tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:", summaryKeyPrefix, tenantID.String())
}

// Get returns the cached summary, or ok=false on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, tenantID uuid.UUID, key string) (*store.SalesSummary, bool, error) {
	cacheKey := tenantPrefix(tenantID) + key
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary store.SalesSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// Corrupt entry; drop it so the next read recomputes.
		_ = c.client.Del(ctx, cacheKey)
		return nil, false, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, true, nil
}

// Set stores summary with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, key string, summary *store.SalesSummary) error {
	if summary == nil {
		return nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, tenantPrefix(tenantID)+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}
	return nil
}

// InvalidateTenant deletes every summary key of the tenant using SCAN
func (c *RedisSummaryCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	var (
		cursor  uint64
		deleted int64
	)
	pattern := tenantPrefix(tenantID) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Debug("Invalidated sales summaries",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("deleted", deleted),
	)
	return nil
}
