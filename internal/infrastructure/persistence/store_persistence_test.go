package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appstore "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/domain/student"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStoreTestDB opens an in-memory database. A single connection keeps
// every statement, transactional or not, on the same in-memory schema.
func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CatalogItemModel{},
		&models.InventoryRecordModel{},
		&models.PackageModel{},
		&models.PackageComponentModel{},
		&models.StoreOrderModel{},
		&models.OrderLineModel{},
		&models.FeeModel{},
		&models.FeePaymentModel{},
		&models.LedgerCategoryModel{},
		&models.FinancialPeriodModel{},
		&models.LedgerTransactionModel{},
		&models.StudentModel{},
	))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX uq_store_orders_package_assignment
		ON store_orders (tenant_id, student_id, package_id, academic_year_id)
		WHERE package_id IS NOT NULL`).Error)
	return db
}

type storeHarness struct {
	db        *gorm.DB
	tenantID  uuid.UUID
	items     *GormCatalogItemRepository
	inventory *GormInventoryRepository
	packages  *GormPackageRepository
	orders    *GormStoreOrderRepository
	scope     *GormStoreTransactionScope
	settle    *appstore.SettlementService
}

func newStoreHarness(t *testing.T) *storeHarness {
	db := setupStoreTestDB(t)
	h := &storeHarness{
		db:        db,
		tenantID:  uuid.New(),
		items:     NewGormCatalogItemRepository(db),
		inventory: NewGormInventoryRepository(db),
		packages:  NewGormPackageRepository(db),
		orders:    NewGormStoreOrderRepository(db),
		scope:     NewGormStoreTransactionScope(db),
	}
	poster := appstore.NewLedgerPoster(appstore.DefaultSettings(), nil, nil)
	h.settle = appstore.NewSettlementService(h.orders, h.scope, poster, nil, nil)
	return h
}

func (h *storeHarness) item(t *testing.T, price, tax int64, stock int) *catalog.CatalogItem {
	t.Helper()
	item, err := catalog.NewCatalogItem(h.tenantID, "Reader", catalog.ItemTypeBook, "books", decimal.NewFromInt(price), decimal.NewFromInt(tax))
	require.NoError(t, err)
	require.NoError(t, h.items.Save(context.Background(), item))
	if stock >= 0 {
		record, err := catalog.NewInventoryRecord(h.tenantID, item.ID, stock, 0)
		require.NoError(t, err)
		require.NoError(t, h.inventory.Save(context.Background(), record))
	}
	return item
}

func (h *storeHarness) order(t *testing.T, item *catalog.CatalogItem, qty int) *store.StoreOrder {
	t.Helper()
	order, err := store.NewAdhocOrder(h.tenantID, uuid.New(), []store.LineSpec{{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      qty,
		UnitPrice:     item.UnitPrice,
		TaxPercentage: item.TaxPercentage,
	}})
	require.NoError(t, err)
	require.NoError(t, h.orders.Save(context.Background(), order))
	return order
}

func (h *storeHarness) activePeriod(t *testing.T) {
	t.Helper()
	now := time.Now()
	period, err := finance.NewFinancialPeriod(h.tenantID, "FY", now.AddDate(0, -1, 0), now.AddDate(0, 11, 0))
	require.NoError(t, err)
	require.NoError(t, h.db.Create(models.FinancialPeriodModelFromDomain(period)).Error)
}

func (h *storeHarness) stock(t *testing.T, itemID uuid.UUID) int {
	t.Helper()
	record, err := h.inventory.FindByItem(context.Background(), h.tenantID, itemID)
	require.NoError(t, err)
	return record.Quantity
}

func (h *storeHarness) ledgerRows(t *testing.T) []models.LedgerTransactionModel {
	t.Helper()
	var rows []models.LedgerTransactionModel
	require.NoError(t, h.db.Where("tenant_id = ?", h.tenantID).Find(&rows).Error)
	return rows
}

func TestStoreSettlement_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("settles, deducts stock and posts income once", func(t *testing.T) {
		h := newStoreHarness(t)
		h.activePeriod(t)
		item := h.item(t, 100, 10, 5)
		order := h.order(t, item, 2)

		resp, err := h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{PaymentMethod: "cash"})
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Order.PaymentStatus)
		assert.True(t, resp.Posting.LedgerPosted)
		assert.Equal(t, 3, h.stock(t, item.ID))

		rows := h.ledgerRows(t)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(220)))
		assert.Equal(t, finance.ReferenceTypeStoreOrder, rows[0].ReferenceType)
		assert.Equal(t, order.ID, rows[0].ReferenceID)

		_, err = h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{})
		assert.True(t, errors.Is(err, shared.ErrAlreadySettled))
		assert.Equal(t, 3, h.stock(t, item.ID))
		assert.Len(t, h.ledgerRows(t), 1)

		reloaded, err := h.orders.FindByIDForTenant(ctx, h.tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.Lines[0].FulfilledQuantity)
		assert.False(t, reloaded.Lines[0].Backordered)
	})

	t.Run("short stock backorders the remainder", func(t *testing.T) {
		h := newStoreHarness(t)
		h.activePeriod(t)
		item := h.item(t, 10, 0, 3)
		order := h.order(t, item, 5)

		_, err := h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{})
		require.NoError(t, err)
		assert.Equal(t, 0, h.stock(t, item.ID))

		reloaded, err := h.orders.FindByIDForTenant(ctx, h.tenantID, order.ID)
		require.NoError(t, err)
		line := reloaded.Lines[0]
		assert.Equal(t, 3, line.FulfilledQuantity)
		assert.Equal(t, 2, line.ShortfallQuantity)
		assert.True(t, line.Backordered)
		assert.Equal(t, line.Quantity, line.FulfilledQuantity+line.ShortfallQuantity)
	})

	t.Run("no active period settles without a ledger row", func(t *testing.T) {
		h := newStoreHarness(t)
		item := h.item(t, 10, 0, 1)
		order := h.order(t, item, 1)

		resp, err := h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{})
		require.NoError(t, err)
		assert.False(t, resp.Posting.LedgerPosted)
		assert.Equal(t, appstore.ReasonNoActivePeriod, resp.Posting.Reason)
		assert.Empty(t, h.ledgerRows(t))

		h.activePeriod(t)
		backfill, err := h.settle.BackfillLedger(ctx, h.tenantID, order.ID, nil)
		require.NoError(t, err)
		assert.True(t, backfill.LedgerPosted)
		again, err := h.settle.BackfillLedger(ctx, h.tenantID, order.ID, nil)
		require.NoError(t, err)
		assert.False(t, again.LedgerPosted)
		assert.Len(t, h.ledgerRows(t), 1)
	})

	t.Run("settles the linked fee", func(t *testing.T) {
		h := newStoreHarness(t)
		h.activePeriod(t)
		item := h.item(t, 50, 0, 10)
		order := h.order(t, item, 1)
		fee, err := finance.NewStoreFee(h.tenantID, order.StudentID, uuid.New(), order.TotalAmount, time.Now().AddDate(0, 0, 7), "Store order")
		require.NoError(t, err)
		require.NoError(t, NewGormFeeBridge(h.db).CreateFee(ctx, fee))
		require.NoError(t, order.LinkFee(fee.ID))
		require.NoError(t, h.orders.Save(ctx, order))

		_, err = h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{PaymentMethod: "MOBILE_MONEY", Reference: "MM-1"})
		require.NoError(t, err)

		var stored models.FeeModel
		require.NoError(t, h.db.First(&stored, "id = ?", fee.ID).Error)
		assert.Equal(t, finance.FeeStatusPaid, stored.Status)
		assert.True(t, stored.Balance.IsZero())
		var payments int64
		require.NoError(t, h.db.Model(&models.FeePaymentModel{}).Where("fee_id = ?", fee.ID).Count(&payments).Error)
		assert.Equal(t, int64(1), payments)
	})

	t.Run("failure inside the transaction leaves nothing behind", func(t *testing.T) {
		h := newStoreHarness(t)
		h.activePeriod(t)
		item := h.item(t, 50, 0, 10)
		order := h.order(t, item, 1)
		missingFee := uuid.New()
		require.NoError(t, order.LinkFee(missingFee))
		require.NoError(t, h.orders.Save(ctx, order))

		_, err := h.settle.Settle(ctx, h.tenantID, order.ID, appstore.SettleRequest{})
		require.Error(t, err)

		reloaded, err := h.orders.FindByIDForTenant(ctx, h.tenantID, order.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsPaid())
		assert.Equal(t, 10, h.stock(t, item.ID))
		assert.Empty(t, h.ledgerRows(t))
	})
}

func TestBulkAssignment_Persistence(t *testing.T) {
	ctx := context.Background()
	h := newStoreHarness(t)
	item := h.item(t, 100, 10, -1)
	pkg, err := catalog.NewPackage(h.tenantID, "Grade 4 Kit", uuid.New(),
		[]catalog.ComponentSpec{{ItemID: item.ID, Quantity: 2}},
		map[uuid.UUID]*catalog.CatalogItem{item.ID: item})
	require.NoError(t, err)
	require.NoError(t, h.packages.Save(ctx, pkg))

	for i, status := range []student.Status{student.StatusActive, student.StatusActive, student.StatusActive, student.StatusWithdrawn} {
		row := models.StudentModel{TenantID: h.tenantID, Name: string(rune('A' + i)), Grade: "4", Status: status}
		row.ID = uuid.New()
		require.NoError(t, h.db.Create(&row).Error)
	}

	svc := appstore.NewBulkAssignmentService(h.packages, NewGormStudentDirectory(h.db), h.scope, appstore.DefaultSettings(), nil, nil)

	first, err := svc.AssignPackageToGrade(ctx, h.tenantID, pkg.ID, appstore.AssignPackageRequest{Grade: "4"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 3, first.Created)

	second, err := svc.AssignPackageToGrade(ctx, h.tenantID, pkg.ID, appstore.AssignPackageRequest{Grade: "4"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Skipped)

	var fees int64
	require.NoError(t, h.db.Model(&models.FeeModel{}).Where("tenant_id = ?", h.tenantID).Count(&fees).Error)
	assert.Equal(t, int64(3), fees)

	orders, err := h.orders.FindAllForTenant(ctx, h.tenantID, shared.DefaultFilter().WithFilter("package_id", pkg.ID))
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.NotNil(t, o.FeeID)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(220)))
	}
}

func TestGormStoreOrderRepository_SaveRejectsDuplicatePackageAssignment(t *testing.T) {
	ctx := context.Background()
	h := newStoreHarness(t)
	item := h.item(t, 100, 10, -1)
	pkg, err := catalog.NewPackage(h.tenantID, "Grade 5 Kit", uuid.New(),
		[]catalog.ComponentSpec{{ItemID: item.ID, Quantity: 1}},
		map[uuid.UUID]*catalog.CatalogItem{item.ID: item})
	require.NoError(t, err)
	studentID := uuid.New()

	first, err := store.NewPackageOrder(h.tenantID, studentID, pkg)
	require.NoError(t, err)
	require.NoError(t, h.orders.Save(ctx, first))

	// updating the stored order is not a collision
	first.SetNotes("handed out in class")
	require.NoError(t, h.orders.Save(ctx, first))

	second, err := store.NewPackageOrder(h.tenantID, studentID, pkg)
	require.NoError(t, err)
	err = h.orders.Save(ctx, second)
	assert.True(t, errors.Is(err, store.ErrPackageAlreadyAssigned))

	var count int64
	require.NoError(t, h.db.Model(&models.StoreOrderModel{}).Where("student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormStoreOrderRepository_Summarize(t *testing.T) {
	ctx := context.Background()
	h := newStoreHarness(t)
	h.activePeriod(t)
	item := h.item(t, 100, 10, 3)

	paid := h.order(t, item, 5)
	_ = h.order(t, item, 1)
	_, err := h.settle.Settle(ctx, h.tenantID, paid.ID, appstore.SettleRequest{})
	require.NoError(t, err)

	summary, err := h.orders.Summarize(ctx, h.tenantID, store.SummaryFilter{TopItems: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.PaidOrders)
	assert.Equal(t, int64(1), summary.UnpaidOrders)
	assert.True(t, summary.GrossRevenue.Equal(decimal.NewFromInt(550)))
	assert.True(t, summary.TaxCollected.Equal(decimal.NewFromInt(50)))
	assert.True(t, summary.OutstandingAmount.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, int64(3), summary.UnitsSold)
	assert.Equal(t, int64(1), summary.BackorderedLines)
	assert.Equal(t, int64(2), summary.BackorderedUnits)
	require.Len(t, summary.TopItems, 1)
	assert.Equal(t, item.ID, summary.TopItems[0].ItemID)
	assert.True(t, summary.TopItems[0].Revenue.Equal(decimal.NewFromInt(500)))

	other, err := h.orders.Summarize(ctx, uuid.New(), store.SummaryFilter{TopItems: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), other.TotalOrders)
	assert.Empty(t, other.TopItems)
}

func TestGormLedgerBridge_FindOrCreateCategory(t *testing.T) {
	ctx := context.Background()
	db := setupStoreTestDB(t)
	bridge := NewGormLedgerBridge(db)
	tenantID := uuid.New()

	first, err := bridge.FindOrCreateCategory(ctx, tenantID, "Store Sales", finance.LedgerEntryIncome)
	require.NoError(t, err)
	second, err := bridge.FindOrCreateCategory(ctx, tenantID, "Store Sales", finance.LedgerEntryIncome)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = bridge.FindActiveFinancialPeriod(ctx, tenantID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormPackageRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newStoreHarness(t)
	book := h.item(t, 100, 10, -1)
	pen := h.item(t, 5, 0, -1)
	pkg, err := catalog.NewPackage(h.tenantID, "Kit", uuid.New(),
		[]catalog.ComponentSpec{{ItemID: book.ID, Quantity: 1}, {ItemID: pen.ID, Quantity: 4}},
		map[uuid.UUID]*catalog.CatalogItem{book.ID: book, pen.ID: pen})
	require.NoError(t, err)
	discount := decimal.NewFromInt(110)
	require.NoError(t, pkg.SetDiscountedPrice(&discount))
	require.NoError(t, h.packages.Save(ctx, pkg))

	loaded, err := h.packages.FindByIDForTenant(ctx, h.tenantID, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Components, 2)
	assert.True(t, loaded.TotalPrice.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, loaded.DiscountedPrice)
	assert.True(t, loaded.DiscountedPrice.Equal(discount))

	_, err = h.packages.FindByIDForTenant(ctx, uuid.New(), pkg.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	count, err := h.packages.CountForTenant(ctx, h.tenantID, shared.DefaultFilter().WithFilter("is_active", true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
