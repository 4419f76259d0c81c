package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
)

// CatalogItemRepository defines persistence for catalog items
type CatalogItemRepository interface {
	// FindByIDForTenant finds an item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CatalogItem, error)

	// FindByIDs finds multiple items; missing ids are simply absent from the result
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]CatalogItem, error)

	// FindAllForTenant lists items (filters: type, category, grade, is_active)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CatalogItem, error)

	// CountForTenant counts items matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *CatalogItem) error
}

// InventoryRepository defines persistence for inventory records
type InventoryRepository interface {
	// FindByItem returns the record for an item, or shared.ErrNotFound
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID) (*InventoryRecord, error)

	// FindByItemForUpdate returns the record with a row lock held until the
	// surrounding transaction ends, or shared.ErrNotFound
	FindByItemForUpdate(ctx context.Context, tenantID, itemID uuid.UUID) (*InventoryRecord, error)

	// FindLowStock lists records at or below their threshold
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]InventoryRecord, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *InventoryRecord) error
}

// PackageRepository defines persistence for packages and their components
type PackageRepository interface {
	// FindByIDForTenant finds a package with components
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Package, error)

	// FindAllForTenant lists packages (filters: grade, academic_year_id, is_active)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Package, error)

	// CountForTenant counts packages matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a package and its components in one operation
	Save(ctx context.Context, pkg *Package) error
}
