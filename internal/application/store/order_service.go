package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/domain/student"
	"go.uber.org/zap"
)

// OrderService builds ad-hoc orders and answers order queries
type OrderService struct {
	orderRepo      store.OrderRepository
	itemRepo       catalog.CatalogItemRepository
	directory      student.Directory
	txScope        TransactionScope
	settler        *settler
	settings       Settings
	metrics        Metrics
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo store.OrderRepository,
	itemRepo catalog.CatalogItemRepository,
	directory student.Directory,
	txScope TransactionScope,
	poster *LedgerPoster,
	settings Settings,
	metrics Metrics,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		directory: directory,
		txScope:   txScope,
		settler:   &settler{poster: poster, metrics: metrics, logger: logger},
		settings:  settings.withDefaults(),
		metrics:   metrics,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateAdhocOrder builds an order from catalog items at their current prices.
// The order is either billed as a fee (GenerateFee with an academic year) or
// settled immediately through the same path as SettlementService.Settle.
func (s *OrderService) CreateAdhocOrder(ctx context.Context, tenantID uuid.UUID, req CreateAdhocOrderRequest) (*CreateOrderResponse, error) {
	method, err := finance.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.FindByID(ctx, tenantID, req.StudentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}

	specs, err := s.resolveLines(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	order, err := store.NewAdhocOrder(tenantID, req.StudentID, specs)
	if err != nil {
		return nil, err
	}
	order.SetAcademicYear(req.AcademicYearID)
	order.SetNotes(req.Notes)
	if req.CreatedBy != nil {
		order.SetCreatedBy(*req.CreatedBy)
	}

	deferToFee := req.GenerateFee && req.AcademicYearID != nil
	if req.GenerateFee && !deferToFee {
		s.logger.Info("fee requested without academic year, settling immediately",
			zap.String("order_id", order.ID.String()),
		)
	}

	var outcome *settlementOutcome
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if deferToFee {
			fee, err := finance.NewStoreFee(tenantID, order.StudentID, *req.AcademicYearID, order.TotalAmount,
				dueDate(s.settings.AdhocFeeDueDays), fmt.Sprintf("Store order %s", order.ID))
			if err != nil {
				return err
			}
			fee.LinkSource(finance.FeeSourceStoreOrder, order.ID)
			if err := repos.FeeBridge().CreateFee(ctx, fee); err != nil {
				return fmt.Errorf("failed to create fee: %w", err)
			}
			if err := order.LinkFee(fee.ID); err != nil {
				return err
			}
			return repos.OrderRepo().Save(ctx, order)
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		outcome, err = s.settler.settle(ctx, repos, order, method, req.PaymentReference, req.CreatedBy)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(ctx, order.Source)
	response := &CreateOrderResponse{}
	if outcome != nil {
		s.settler.afterCommit(ctx, order)
		publish(ctx, s.eventPublisher, s.logger, outcome.events)
		posting := ToPostingResponse(outcome.posting)
		response.Posting = &posting
	} else {
		publish(ctx, s.eventPublisher, s.logger, order.PullDomainEvents())
	}

	s.logger.Info("ad-hoc order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("student_id", order.StudentID.String()),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Bool("fee_linked", order.HasFee()),
	)

	response.Order = ToOrderResponse(order)
	return response, nil
}

// resolveLines prices every requested line from the catalog. Any missing or
// inactive item aborts the whole order.
func (s *OrderService) resolveLines(ctx context.Context, tenantID uuid.UUID, lines []OrderLineRequest) ([]store.LineSpec, error) {
	if len(lines) == 0 {
		return nil, shared.InvalidInput("Order must contain at least one line")
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	byID := make(map[uuid.UUID]*catalog.CatalogItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	specs := make([]store.LineSpec, 0, len(lines))
	for _, l := range lines {
		item, ok := byID[l.ItemID]
		if !ok {
			return nil, shared.NewDomainError(catalog.ErrItemNotFound.Code, "Catalog item not found: "+l.ItemID.String())
		}
		if !item.IsActive {
			return nil, shared.InvalidInput("Catalog item is inactive: "+item.Name)
		}
		specs = append(specs, store.LineSpec{
			ItemID:        item.ID,
			ItemName:      item.Name,
			Quantity:      l.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxPercentage: item.TaxPercentage,
		})
	}
	return specs, nil
}

// GetOrder returns an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, store.ErrOrderNotFound
		}
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders lists orders with pagination
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.StudentID != nil {
		domainFilter = domainFilter.WithFilter("student_id", *filter.StudentID)
	}
	if filter.PackageID != nil {
		domainFilter = domainFilter.WithFilter("package_id", *filter.PackageID)
	}
	if filter.AcademicYearID != nil {
		domainFilter = domainFilter.WithFilter("academic_year_id", *filter.AcademicYearID)
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithFilter("status", filter.Status)
	}
	if filter.PaymentStatus != "" {
		domainFilter = domainFilter.WithFilter("payment_status", filter.PaymentStatus)
	}
	if filter.Source != "" {
		domainFilter = domainFilter.WithFilter("source", filter.Source)
	}
	if filter.StartDate != nil {
		domainFilter = domainFilter.WithFilter("start_date", *filter.StartDate)
	}
	if filter.EndDate != nil {
		domainFilter = domainFilter.WithFilter("end_date", *filter.EndDate)
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderListItemResponse(&orders[i])
	}
	return items, total, nil
}
