package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"go.uber.org/zap"
)

// FulfillmentService records physical issuance of paid orders
type FulfillmentService struct {
	orderRepo      store.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(orderRepo store.OrderRepository, logger *zap.Logger) *FulfillmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FulfillmentService{orderRepo: orderRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Fulfill stamps every line issued. Status becomes PARTIALLY_FULFILLED when a
// line is backordered. Running it again re-stamps the lines.
func (s *FulfillmentService) Fulfill(ctx context.Context, tenantID, orderID uuid.UUID, req FulfillRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, store.ErrOrderNotFound
		}
		return nil, err
	}

	if err := order.Fulfill(req.IssuedBy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save fulfilled order: %w", err)
	}

	publish(ctx, s.eventPublisher, s.logger, order.PullDomainEvents())

	s.logger.Info("order fulfilled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("status", order.Status.String()),
		zap.String("issued_by", req.IssuedBy.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}
