package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newItemService() (*ItemService, *MockCatalogItemRepository, *MockInventoryRepository) {
	itemRepo := new(MockCatalogItemRepository)
	invRepo := new(MockInventoryRepository)
	return NewItemService(itemRepo, invRepo, nil), itemRepo, invRepo
}

func testItem(t *testing.T, tenantID uuid.UUID) *catalog.CatalogItem {
	t.Helper()
	item, err := catalog.NewCatalogItem(tenantID, "Reader", catalog.ItemTypeBook, "books", decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestItemService_CreateItem(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates item with opening stock and publishes event", func(t *testing.T) {
		svc, itemRepo, invRepo := newItemService()
		publisher := new(MockEventPublisher)
		svc.SetEventPublisher(publisher)

		itemRepo.On("Save", ctx, mock.AnythingOfType("*catalog.CatalogItem")).Return(nil)
		invRepo.On("Save", ctx, mock.MatchedBy(func(r *catalog.InventoryRecord) bool {
			return r.Quantity == 12 && r.LowStockThreshold == 3
		})).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		opening, threshold := 12, 3
		resp, err := svc.CreateItem(ctx, tenantID, CreateItemRequest{
			Name:              "Reader",
			Type:              "BOOK",
			Grade:             "4",
			UnitPrice:         decimal.NewFromInt(100),
			TaxPercentage:     decimal.NewFromInt(10),
			OpeningStock:      &opening,
			LowStockThreshold: &threshold,
		})
		require.NoError(t, err)
		assert.Equal(t, "Reader", resp.Name)
		require.NotNil(t, resp.Grade)
		assert.Equal(t, "4", *resp.Grade)
		itemRepo.AssertExpectations(t)
		invRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects invalid price without saving", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		_, err := svc.CreateItem(ctx, tenantID, CreateItemRequest{
			Name:      "Reader",
			Type:      "BOOK",
			UnitPrice: decimal.Zero,
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestItemService_GetItem_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, _ := newItemService()
	tenantID, id := uuid.New(), uuid.New()
	itemRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetItem(ctx, tenantID, id)
	assert.True(t, errors.Is(err, catalog.ErrItemNotFound))
}

func TestItemService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates a record on first adjustment", func(t *testing.T) {
		svc, itemRepo, invRepo := newItemService()
		item := testItem(t, tenantID)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		invRepo.On("FindByItem", ctx, tenantID, item.ID).Return(nil, shared.ErrNotFound)
		invRepo.On("Save", ctx, mock.AnythingOfType("*catalog.InventoryRecord")).Return(nil)

		resp, err := svc.AdjustStock(ctx, tenantID, item.ID, AdjustStockRequest{Mode: StockModeAdd, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Quantity)
	})

	t.Run("sets quantity and threshold", func(t *testing.T) {
		svc, itemRepo, invRepo := newItemService()
		item := testItem(t, tenantID)
		record, err := catalog.NewInventoryRecord(tenantID, item.ID, 10, 0)
		require.NoError(t, err)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		invRepo.On("FindByItem", ctx, tenantID, item.ID).Return(record, nil)
		invRepo.On("Save", ctx, record).Return(nil)

		threshold := 2
		resp, err := svc.AdjustStock(ctx, tenantID, item.ID, AdjustStockRequest{Mode: StockModeSet, Quantity: 2, LowStockThreshold: &threshold})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Quantity)
		assert.True(t, resp.IsLowStock)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		id := uuid.New()
		itemRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.AdjustStock(ctx, tenantID, id, AdjustStockRequest{Mode: StockModeSet})
		assert.True(t, errors.Is(err, catalog.ErrItemNotFound))
	})
}

func TestItemService_GetStock_NoRecordIsZero(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, itemRepo, invRepo := newItemService()
	item := testItem(t, tenantID)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
	invRepo.On("FindByItem", ctx, tenantID, item.ID).Return(nil, shared.ErrNotFound)

	resp, err := svc.GetStock(ctx, tenantID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestItemService_ListItems(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, itemRepo, _ := newItemService()
	item := testItem(t, tenantID)

	active := true
	match := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["type"] == "BOOK" && f.Filters["is_active"] == true && f.PageSize == 10
	})
	itemRepo.On("FindAllForTenant", ctx, tenantID, match).Return([]catalog.CatalogItem{*item}, nil)
	itemRepo.On("CountForTenant", ctx, tenantID, match).Return(int64(1), nil)

	items, total, err := svc.ListItems(ctx, tenantID, ItemListFilter{Type: "BOOK", IsActive: &active, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}
