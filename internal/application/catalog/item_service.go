package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ItemService handles catalog item and stock operations
type ItemService struct {
	itemRepo       catalog.CatalogItemRepository
	inventoryRepo  catalog.InventoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo catalog.CatalogItemRepository,
	inventoryRepo catalog.InventoryRepository,
	logger *zap.Logger,
) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateItem adds an item to the catalog, optionally with opening stock
func (s *ItemService) CreateItem(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewCatalogItem(tenantID, req.Name, catalog.ItemType(req.Type), req.Category, req.UnitPrice, req.TaxPercentage)
	if err != nil {
		return nil, err
	}
	if req.Grade != "" {
		item.SetGrade(req.Grade)
	}
	if req.CreatedBy != nil {
		item.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save catalog item: %w", err)
	}

	if req.OpeningStock != nil || req.LowStockThreshold != nil {
		qty, threshold := 0, 0
		if req.OpeningStock != nil {
			qty = *req.OpeningStock
		}
		if req.LowStockThreshold != nil {
			threshold = *req.LowStockThreshold
		}
		record, err := catalog.NewInventoryRecord(tenantID, item.ID, qty, threshold)
		if err != nil {
			return nil, err
		}
		if err := s.inventoryRepo.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save opening stock: %w", err)
		}
	}

	publishEvents(ctx, s.eventPublisher, s.logger, item)

	s.logger.Info("catalog item created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("type", item.Type.String()),
	)

	response := ToItemResponse(item)
	return &response, nil
}

// GetItem returns one item
func (s *ItemService) GetItem(ctx context.Context, tenantID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// ListItems lists catalog items with pagination
func (s *ItemService) ListItems(ctx context.Context, tenantID uuid.UUID, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.Type != "" {
		domainFilter = domainFilter.WithFilter("type", filter.Type)
	}
	if filter.Category != "" {
		domainFilter = domainFilter.WithFilter("category", filter.Category)
	}
	if filter.Grade != "" {
		domainFilter = domainFilter.WithFilter("grade", filter.Grade)
	}
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithFilter("is_active", *filter.IsActive)
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, total, nil
}

// GetStock returns on-hand stock; an item without a record has zero stock
func (s *ItemService) GetStock(ctx context.Context, tenantID, itemID uuid.UUID) (*StockResponse, error) {
	if _, err := s.GetItem(ctx, tenantID, itemID); err != nil {
		return nil, err
	}
	record, err := s.inventoryRepo.FindByItem(ctx, tenantID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &StockResponse{ItemID: itemID}, nil
		}
		return nil, err
	}
	response := ToStockResponse(record)
	return &response, nil
}

// AdjustStock sets or adds on-hand quantity, creating the record on first use
func (s *ItemService) AdjustStock(ctx context.Context, tenantID, itemID uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	if _, err := s.GetItem(ctx, tenantID, itemID); err != nil {
		return nil, err
	}

	record, err := s.inventoryRepo.FindByItem(ctx, tenantID, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		record, err = catalog.NewInventoryRecord(tenantID, itemID, 0, 0)
		if err != nil {
			return nil, err
		}
	}

	switch req.Mode {
	case StockModeSet:
		err = record.SetQuantity(req.Quantity)
	case StockModeAdd:
		err = record.Restock(req.Quantity)
	default:
		err = shared.InvalidInput("Unknown stock adjustment mode: "+req.Mode)
	}
	if err != nil {
		return nil, err
	}
	if req.LowStockThreshold != nil {
		if err := record.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.inventoryRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save inventory record: %w", err)
	}

	s.logger.Info("stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("mode", req.Mode),
		zap.Int("quantity", record.Quantity),
	)

	response := ToStockResponse(record)
	return &response, nil
}

// ListLowStock lists items at or below their alert threshold
func (s *ItemService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]StockResponse, error) {
	records, err := s.inventoryRepo.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]StockResponse, len(records))
	for i := range records {
		responses[i] = ToStockResponse(&records[i])
	}
	return responses, nil
}

func toDomainFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir != "" {
		f.OrderDir = orderDir
	}
	f.Search = search
	return f
}

// publishEvents hands pending aggregate events to the bus. Publishing failures
// are logged only; the write has already been committed.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, agg shared.AggregateRoot) {
	events := agg.PullDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish domain events",
			zap.String("aggregate_id", agg.GetID().String()),
			zap.Error(err),
		)
	}
}
