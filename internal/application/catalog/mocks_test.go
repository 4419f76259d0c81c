package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCatalogItemRepository is a mock implementation of CatalogItemRepository
type MockCatalogItemRepository struct {
	mock.Mock
}

func (m *MockCatalogItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.InventoryRecord, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRepository) FindByItemForUpdate(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.InventoryRecord, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.InventoryRecord, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]catalog.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, record *catalog.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockPackageRepository is a mock implementation of PackageRepository
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Package, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockPackageRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Package, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Package), args.Error(1)
}

func (m *MockPackageRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPackageRepository) Save(ctx context.Context, pkg *catalog.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
