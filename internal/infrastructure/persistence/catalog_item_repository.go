package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormCatalogItemRepository implements catalog.CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindByIDForTenant finds an item by ID within a tenant
func (r *GormCatalogItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple items by their IDs
func (r *GormCatalogItemRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.CatalogItem, error) {
	if len(ids) == 0 {
		return []catalog.CatalogItem{}, nil
	}
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return catalogItemsToDomain(rows), nil
}

// FindAllForTenant lists items for a tenant
func (r *GormCatalogItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	var rows []models.CatalogItemModel
	query := applyPaging(r.scoped(ctx, tenantID, filter), filter, CatalogItemSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return catalogItemsToDomain(rows), nil
}

// CountForTenant counts items matching the filter
func (r *GormCatalogItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	return r.db.WithContext(ctx).Save(models.CatalogItemModelFromDomain(item)).Error
}

func (r *GormCatalogItemRepository) scoped(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CatalogItemModel{}).Scopes(tenant.Scope(ctx, tenantID))
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return applyEquals(query, filter, "type", "category", "grade", "is_active")
}

func catalogItemsToDomain(rows []models.CatalogItemModel) []catalog.CatalogItem {
	items := make([]catalog.CatalogItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

var _ catalog.CatalogItemRepository = (*GormCatalogItemRepository)(nil)
