package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"go.uber.org/zap"
)

// SummaryCache stores computed sales summaries per tenant
type SummaryCache interface {
	// Get returns the cached summary and whether it was present
	Get(ctx context.Context, tenantID uuid.UUID, key string) (*store.SalesSummary, bool, error)
	// Set stores a summary under the tenant
	Set(ctx context.Context, tenantID uuid.UUID, key string, summary *store.SalesSummary) error
	// InvalidateTenant drops every summary of the tenant
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}

const defaultTopItems = 5

// SalesSummaryService aggregates store sales for reporting
type SalesSummaryService struct {
	orderRepo store.OrderRepository
	cache     SummaryCache
	logger    *zap.Logger
}

// NewSalesSummaryService creates a new SalesSummaryService. cache may be nil.
func NewSalesSummaryService(orderRepo store.OrderRepository, cache SummaryCache, logger *zap.Logger) *SalesSummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesSummaryService{orderRepo: orderRepo, cache: cache, logger: logger}
}

// GetSummary returns the sales summary, served from cache when possible.
// Cache failures degrade to a direct query.
func (s *SalesSummaryService) GetSummary(ctx context.Context, tenantID uuid.UUID, req SummaryRequest) (*SalesSummaryResponse, error) {
	filter := store.SummaryFilter{
		From:           req.From,
		To:             req.To,
		AcademicYearID: req.AcademicYearID,
		TopItems:       req.TopItems,
	}
	if filter.TopItems <= 0 {
		filter.TopItems = defaultTopItems
	}
	key := summaryKey(filter)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, tenantID, key)
		if err != nil {
			s.logger.Warn("sales summary cache read failed", zap.Error(err))
		} else if ok {
			response := ToSalesSummaryResponse(cached, true)
			return &response, nil
		}
	}

	summary, err := s.orderRepo.Summarize(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, key, summary); err != nil {
			s.logger.Warn("sales summary cache write failed", zap.Error(err))
		}
	}

	response := ToSalesSummaryResponse(summary, false)
	return &response, nil
}

func summaryKey(f store.SummaryFilter) string {
	parts := []string{"all", "all", "all", fmt.Sprint(f.TopItems)}
	if f.From != nil {
		parts[0] = f.From.UTC().Format("20060102")
	}
	if f.To != nil {
		parts[1] = f.To.UTC().Format("20060102")
	}
	if f.AcademicYearID != nil {
		parts[2] = f.AcademicYearID.String()
	}
	return strings.Join(parts, ":")
}

// SummaryInvalidationHandler drops cached summaries when orders change
type SummaryInvalidationHandler struct {
	cache  SummaryCache
	logger *zap.Logger
}

// NewSummaryInvalidationHandler creates a new SummaryInvalidationHandler
func NewSummaryInvalidationHandler(cache SummaryCache, logger *zap.Logger) *SummaryInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *SummaryInvalidationHandler) EventTypes() []string {
	return []string{
		store.EventTypeStoreOrderCreated,
		store.EventTypeStoreOrderSettled,
		store.EventTypeStoreOrderFulfilled,
	}
}

// Handle invalidates the tenant's cached summaries
func (h *SummaryInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.InvalidateTenant(ctx, event.TenantID()); err != nil {
		h.logger.Warn("failed to invalidate sales summary cache",
			zap.String("tenant_id", event.TenantID().String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*SummaryInvalidationHandler)(nil)
