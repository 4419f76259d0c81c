package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/store"
)

const defaultCleanupInterval = 30 * time.Second

type summaryEntry struct {
	value     store.SalesSummary
	expiresAt time.Time
}

func (e *summaryEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemorySummaryCache keeps summaries in process. It is meant for single
// instance deployments and tests; entries are not shared across replicas.
type InMemorySummaryCache struct {
	entries sync.Map // map[string]*summaryEntry
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// NewInMemorySummaryCache creates the cache and starts its cleanup loop
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	c := &InMemorySummaryCache{
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get returns a copy of the cached summary
func (c *InMemorySummaryCache) Get(_ context.Context, tenantID uuid.UUID, key string) (*store.SalesSummary, bool, error) {
	v, ok := c.entries.Load(tenantPrefix(tenantID) + key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	entry := v.(*summaryEntry)
	if entry.isExpired(c.now()) {
		c.entries.Delete(tenantPrefix(tenantID) + key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&c.hits, 1)
	summary := entry.value
	summary.TopItems = append([]store.ItemSales(nil), entry.value.TopItems...)
	return &summary, true, nil
}

// Set stores a copy of summary
func (c *InMemorySummaryCache) Set(_ context.Context, tenantID uuid.UUID, key string, summary *store.SalesSummary) error {
	if summary == nil {
		return nil
	}
	value := *summary
	value.TopItems = append([]store.ItemSales(nil), summary.TopItems...)
	c.entries.Store(tenantPrefix(tenantID)+key, &summaryEntry{value: value, expiresAt: c.now().Add(c.ttl)})
	return nil
}

// InvalidateTenant drops every entry of the tenant
func (c *InMemorySummaryCache) InvalidateTenant(_ context.Context, tenantID uuid.UUID) error {
	prefix := tenantPrefix(tenantID)
	c.entries.Range(func(k, _ any) bool {
		if strings.HasPrefix(k.(string), prefix) {
			c.entries.Delete(k)
		}
		return true
	})
	return nil
}

// Stats returns hit and miss counts
func (c *InMemorySummaryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (c *InMemorySummaryCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

func (c *InMemorySummaryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := c.now()
			c.entries.Range(func(k, v any) bool {
				if v.(*summaryEntry).isExpired(now) {
					c.entries.Delete(k)
				}
				return true
			})
		}
	}
}
