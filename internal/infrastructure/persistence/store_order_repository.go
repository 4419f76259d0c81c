package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/tenant"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreOrderRepository implements store.OrderRepository using GORM
type GormStoreOrderRepository struct {
	db *gorm.DB
}

// NewGormStoreOrderRepository creates a new GormStoreOrderRepository
func NewGormStoreOrderRepository(db *gorm.DB) *GormStoreOrderRepository {
	return &GormStoreOrderRepository{db: db}
}

// FindByIDForTenant finds an order with its lines
func (r *GormStoreOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*store.StoreOrder, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate locks the order row for the rest of the transaction
func (r *GormStoreOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*store.StoreOrder, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormStoreOrderRepository) findOne(query *gorm.DB, tenantID, id uuid.UUID) (*store.StoreOrder, error) {
	var model models.StoreOrderModel
	if err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists orders with their lines
func (r *GormStoreOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]store.StoreOrder, error) {
	var rows []models.StoreOrderModel
	query := applyPaging(r.scoped(ctx, tenantID, filter), filter, StoreOrderSortFields)
	if err := query.Preload("Lines").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]store.StoreOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts orders matching the filter
func (r *GormStoreOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsActiveAssignment reports whether the student already holds an UNPAID
// or PAID order for the package in the academic year
func (r *GormStoreOrderRepository) ExistsActiveAssignment(ctx context.Context, tenantID, studentID, packageID, academicYearID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StoreOrderModel{}).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("student_id = ? AND package_id = ? AND academic_year_id = ?", studentID, packageID, academicYearID).
		Where("payment_status IN ?", store.ActivePaymentStatuses()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save writes the order header and its lines. A package order that collides
// with the unique (tenant, student, package, year) index returns
// store.ErrPackageAlreadyAssigned.
func (r *GormStoreOrderRepository) Save(ctx context.Context, order *store.StoreOrder) error {
	model := models.StoreOrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if order.PackageID != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrPackageAlreadyAssigned
	}
	return err
}

// Summarize aggregates order counts, revenue and line figures for a tenant
func (r *GormStoreOrderRepository) Summarize(ctx context.Context, tenantID uuid.UUID, filter store.SummaryFilter) (*store.SalesSummary, error) {
	type orderTotals struct {
		TotalOrders        int64
		PaidOrders         int64
		UnpaidOrders       int64
		FulfilledOrders    int64
		PartiallyFulfilled int64
		GrossRevenue       decimal.Decimal
		TaxCollected       decimal.Decimal
		OutstandingAmount  decimal.Decimal
	}
	type lineTotals struct {
		UnitsSold        int64
		BackorderedLines int64
		BackorderedUnits int64
	}

	scope := func(query *gorm.DB, alias string) *gorm.DB {
		query = query.Scopes(tenant.ScopeColumn(ctx, alias+".tenant_id", tenantID))
		if filter.From != nil {
			query = query.Where(alias+".created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where(alias+".created_at <= ?", *filter.To)
		}
		if filter.AcademicYearID != nil {
			query = query.Where(alias+".academic_year_id = ?", *filter.AcademicYearID)
		}
		return query
	}

	db := r.db.WithContext(ctx)
	summary := store.EmptySalesSummary()

	var orders orderTotals
	if err := scope(db.Table("store_orders o"), "o").Select(`
			COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN o.payment_status = 'PAID' THEN 1 ELSE 0 END), 0) AS paid_orders,
			COALESCE(SUM(CASE WHEN o.payment_status = 'UNPAID' THEN 1 ELSE 0 END), 0) AS unpaid_orders,
			COALESCE(SUM(CASE WHEN o.status = 'FULFILLED' THEN 1 ELSE 0 END), 0) AS fulfilled_orders,
			COALESCE(SUM(CASE WHEN o.status = 'PARTIALLY_FULFILLED' THEN 1 ELSE 0 END), 0) AS partially_fulfilled,
			COALESCE(SUM(CASE WHEN o.payment_status = 'PAID' THEN o.total_amount ELSE 0 END), 0) AS gross_revenue,
			COALESCE(SUM(CASE WHEN o.payment_status = 'PAID' THEN o.tax_amount ELSE 0 END), 0) AS tax_collected,
			COALESCE(SUM(CASE WHEN o.payment_status = 'UNPAID' THEN o.total_amount ELSE 0 END), 0) AS outstanding_amount
		`).Scan(&orders).Error; err != nil {
		return nil, err
	}

	paidLines := func() *gorm.DB {
		return scope(db.Table("store_order_lines l").Joins("JOIN store_orders o ON o.id = l.order_id"), "o").
			Where("o.payment_status = ?", store.PaymentStatusPaid)
	}

	var lines lineTotals
	if err := paidLines().Select(`
			COALESCE(SUM(l.fulfilled_quantity), 0) AS units_sold,
			COALESCE(SUM(CASE WHEN l.backordered THEN 1 ELSE 0 END), 0) AS backordered_lines,
			COALESCE(SUM(l.shortfall_quantity), 0) AS backordered_units
		`).Scan(&lines).Error; err != nil {
		return nil, err
	}

	var top []store.ItemSales
	if filter.TopItems > 0 {
		if err := paidLines().Select(`
				l.item_id AS item_id,
				MAX(l.item_name) AS item_name,
				COALESCE(SUM(l.quantity), 0) AS quantity,
				COALESCE(SUM(l.unit_price * l.quantity), 0) AS revenue
			`).
			Group("l.item_id").
			Order("revenue DESC").
			Limit(filter.TopItems).
			Scan(&top).Error; err != nil {
			return nil, err
		}
	}

	summary.TotalOrders = orders.TotalOrders
	summary.PaidOrders = orders.PaidOrders
	summary.UnpaidOrders = orders.UnpaidOrders
	summary.FulfilledOrders = orders.FulfilledOrders
	summary.PartiallyFulfilled = orders.PartiallyFulfilled
	summary.GrossRevenue = orders.GrossRevenue
	summary.TaxCollected = orders.TaxCollected
	summary.OutstandingAmount = orders.OutstandingAmount
	summary.UnitsSold = lines.UnitsSold
	summary.BackorderedLines = lines.BackorderedLines
	summary.BackorderedUnits = lines.BackorderedUnits
	if top != nil {
		summary.TopItems = top
	}
	return summary, nil
}

func (r *GormStoreOrderRepository) scoped(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.StoreOrderModel{}).Scopes(tenant.Scope(ctx, tenantID))
	query = applyEquals(query, filter, "student_id", "package_id", "academic_year_id", "status", "payment_status", "source")
	return applyDateRange(query, filter)
}

var _ store.OrderRepository = (*GormStoreOrderRepository)(nil)
