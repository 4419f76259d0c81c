package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/domain/student"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of store.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*store.StoreOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.StoreOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*store.StoreOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.StoreOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]store.StoreOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]store.StoreOrder), args.Error(1)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ExistsActiveAssignment(ctx context.Context, tenantID, studentID, packageID, academicYearID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, studentID, packageID, academicYearID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *store.StoreOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Summarize(ctx context.Context, tenantID uuid.UUID, filter store.SummaryFilter) (*store.SalesSummary, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.SalesSummary), args.Error(1)
}

// MockInventoryRepository is a mock implementation of catalog.InventoryRepository
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

// MockCatalogItemRepository is a mock implementation of catalog.CatalogItemRepository
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

// MockPackageRepository is a mock implementation of catalog.PackageRepository
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

// MockFeeBridge is a mock implementation of finance.FeeBridge
type MockFeeBridge struct {
	mock.Mock
}

func (m *MockFeeBridge) CreateFee(ctx context.Context, fee *finance.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeBridge) FindFeeForUpdate(ctx context.Context, tenantID, feeID uuid.UUID) (*finance.Fee, error) {
	args := m.Called(ctx, tenantID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Fee), args.Error(1)
}

func (m *MockFeeBridge) MarkFeePaid(ctx context.Context, fee *finance.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeBridge) RecordFeePayment(ctx context.Context, payment *finance.FeePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockLedgerBridge is a mock implementation of finance.LedgerBridge
type MockLedgerBridge struct {
	mock.Mock
}

func (m *MockLedgerBridge) FindOrCreateCategory(ctx context.Context, tenantID uuid.UUID, name string, typ finance.LedgerEntryType) (*finance.LedgerCategory, error) {
	args := m.Called(ctx, tenantID, name, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerCategory), args.Error(1)
}

func (m *MockLedgerBridge) FindActiveFinancialPeriod(ctx context.Context, tenantID uuid.UUID) (*finance.FinancialPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialPeriod), args.Error(1)
}

func (m *MockLedgerBridge) PostTransaction(ctx context.Context, txn *finance.LedgerTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerBridge) FindByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceID uuid.UUID) (*finance.LedgerTransaction, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerTransaction), args.Error(1)
}

// MockDirectory is a mock implementation of student.Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindActiveStudents(ctx context.Context, tenantID uuid.UUID, grade string, classroomIDs []uuid.UUID) ([]student.Student, error) {
	args := m.Called(ctx, tenantID, grade, classroomIDs)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockDirectory) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*student.Student, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

// MockSummaryCache is a mock implementation of SummaryCache
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, tenantID uuid.UUID, key string) (*store.SalesSummary, bool, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*store.SalesSummary), args.Bool(1), args.Error(2)
}

func (m *MockSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, key string, summary *store.SalesSummary) error {
	args := m.Called(ctx, tenantID, key, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// recordingMetrics counts calls instead of exporting them
type recordingMetrics struct {
	created    int
	settled    int
	backorders int
	degraded   int
	bulk       [3]int
}

func (r *recordingMetrics) OrderCreated(context.Context, store.OrderSource) { r.created++ }
func (r *recordingMetrics) OrderSettled(context.Context, decimal.Decimal)   { r.settled++ }
func (r *recordingMetrics) UnitsBackordered(_ context.Context, units int)   { r.backorders += units }
func (r *recordingMetrics) DegradedPosting(context.Context)                 { r.degraded++ }
func (r *recordingMetrics) BulkAssigned(_ context.Context, created, skipped, failed int) {
	r.bulk = [3]int{created, skipped, failed}
}

// failingScope simulates a transaction that aborts after fn runs
type failingScope struct {
	inner TransactionScope
	err   error
}

func (s *failingScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	if err := s.inner.Execute(ctx, fn); err != nil {
		return err
	}
	return s.err
}
