package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// settler is the one path that flips an order to PAID. Callers run it inside
// a transaction; everything it touches goes through repos.
type settler struct {
	poster  *LedgerPoster
	metrics Metrics
	logger  *zap.Logger
}

type settlementOutcome struct {
	posting *PostingResult
	events  []shared.DomainEvent
}

func (s *settler) settle(ctx context.Context, repos TransactionalRepositories, order *store.StoreOrder, method finance.PaymentMethod, reference string, actor *uuid.UUID) (*settlementOutcome, error) {
	if err := order.MarkPaid(string(method), reference); err != nil {
		return nil, err
	}

	if order.FeeID != nil {
		fee, err := repos.FeeBridge().FindFeeForUpdate(ctx, order.TenantID, *order.FeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked fee: %w", err)
		}
		payment, err := fee.Pay(method, reference, *order.PaidAt)
		if err != nil {
			return nil, err
		}
		if err := repos.FeeBridge().RecordFeePayment(ctx, payment); err != nil {
			return nil, fmt.Errorf("failed to record fee payment: %w", err)
		}
		if err := repos.FeeBridge().MarkFeePaid(ctx, fee); err != nil {
			return nil, fmt.Errorf("failed to mark fee paid: %w", err)
		}
	}

	stockEvents, err := settleInventory(ctx, repos.InventoryRepo(), order)
	if err != nil {
		return nil, err
	}

	if err := repos.OrderRepo().Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save settled order: %w", err)
	}

	posting, err := s.poster.PostSale(ctx, repos.LedgerBridge(), order, actor)
	if err != nil {
		return nil, err
	}

	pending := order.PullDomainEvents()
	events := make([]shared.DomainEvent, 0, len(pending)+len(stockEvents))
	events = append(events, pending...)
	events = append(events, stockEvents...)
	return &settlementOutcome{posting: posting, events: events}, nil
}

// afterCommit records metrics for a committed settlement
func (s *settler) afterCommit(ctx context.Context, order *store.StoreOrder) {
	s.metrics.OrderSettled(ctx, order.TotalAmount)
	if units := order.BackorderedQuantity(); units > 0 {
		s.metrics.UnitsBackordered(ctx, units)
		s.logger.Warn("order settled with backorders",
			zap.String("order_id", order.ID.String()),
			zap.Int("backordered_units", units),
		)
	}
}

// SettlementService marks orders paid and posts them to the ledger
type SettlementService struct {
	orderRepo      store.OrderRepository
	txScope        TransactionScope
	settler        *settler
	poster         *LedgerPoster
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	orderRepo store.OrderRepository,
	txScope TransactionScope,
	poster *LedgerPoster,
	metrics Metrics,
	logger *zap.Logger,
) *SettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &SettlementService{
		orderRepo: orderRepo,
		txScope:   txScope,
		settler:   &settler{poster: poster, metrics: metrics, logger: logger},
		poster:    poster,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *SettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Settle moves an order from UNPAID to PAID. The payment flag, the linked fee,
// inventory and the ledger row commit together or not at all.
func (s *SettlementService) Settle(ctx context.Context, tenantID, orderID uuid.UUID, req SettleRequest) (*SettlementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "store_order", "settle",
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("order_id", orderID.String()),
	)
	defer span.End()

	method, err := finance.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, store.ErrOrderNotFound
		}
		return nil, err
	}
	if order.IsPaid() {
		return nil, shared.ErrAlreadySettled
	}

	var settled *store.StoreOrder
	var outcome *settlementOutcome
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Re-read under lock; a concurrent settle may have won the race.
		locked, err := repos.OrderRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return store.ErrOrderNotFound
			}
			return err
		}
		if locked.IsPaid() {
			return shared.ErrAlreadySettled
		}
		outcome, err = s.settler.settle(ctx, repos, locked, method, req.Reference, req.SettledBy)
		if err != nil {
			return err
		}
		settled = locked
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if !errors.Is(err, shared.ErrAlreadySettled) {
			s.logger.Error("settlement rolled back",
				zap.String("tenant_id", tenantID.String()),
				zap.String("order_id", orderID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.settler.afterCommit(ctx, settled)
	publish(ctx, s.eventPublisher, s.logger, outcome.events)

	s.logger.Info("order settled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("amount", settled.TotalAmount.String()),
		zap.Bool("ledger_posted", outcome.posting.Posted),
	)

	return &SettlementResponse{
		Order:   ToOrderResponse(settled),
		Posting: ToPostingResponse(outcome.posting),
	}, nil
}

// BackfillLedger posts the ledger row for a PAID order whose settlement ran
// without an active financial period. Orders already posted are reported,
// not posted twice.
func (s *SettlementService) BackfillLedger(ctx context.Context, tenantID, orderID uuid.UUID, postedBy *uuid.UUID) (*PostingResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, store.ErrOrderNotFound
		}
		return nil, err
	}
	if !order.IsPaid() {
		return nil, shared.ErrNotPaid
	}

	var result *PostingResult
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.LedgerBridge().FindByReference(ctx, tenantID, finance.ReferenceTypeStoreOrder, orderID)
		if err == nil {
			result = &PostingResult{Posted: false, TransactionNumber: existing.TransactionNumber, TransactionID: existing.ID, Reason: ReasonAlreadyPosted}
			return nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		result, err = s.poster.PostSale(ctx, repos.LedgerBridge(), order, postedBy)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToPostingResponse(result)
	return &response, nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}

func dueDate(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}
