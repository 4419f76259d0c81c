package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements catalog.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByItem returns the record for an item
func (r *GormInventoryRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.InventoryRecord, error) {
	return r.findByItem(r.db.WithContext(ctx), tenantID, itemID)
}

// FindByItemForUpdate returns the record with SELECT ... FOR UPDATE. The lock
// is only meaningful inside a transaction.
func (r *GormInventoryRepository) FindByItemForUpdate(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.InventoryRecord, error) {
	return r.findByItem(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, itemID)
}

func (r *GormInventoryRepository) findByItem(query *gorm.DB, tenantID, itemID uuid.UUID) (*catalog.InventoryRecord, error) {
	var model models.InventoryRecordModel
	if err := query.
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLowStock lists records at or below their threshold
func (r *GormInventoryRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.InventoryRecord, error) {
	var rows []models.InventoryRecordModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("low_stock_threshold > 0 AND quantity <= low_stock_threshold").
		Order("quantity ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]catalog.InventoryRecord, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// Save creates or updates a record
func (r *GormInventoryRepository) Save(ctx context.Context, record *catalog.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(models.InventoryRecordModelFromDomain(record)).Error
}

var _ catalog.InventoryRepository = (*GormInventoryRepository)(nil)
