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
	"gorm.io/gorm/clause"
)

// GormPackageRepository implements catalog.PackageRepository using GORM
type GormPackageRepository struct {
	db *gorm.DB
}

// NewGormPackageRepository creates a new GormPackageRepository
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

// FindByIDForTenant finds a package with its components
func (r *GormPackageRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Package, error) {
	var model models.PackageModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
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

// FindAllForTenant lists packages with their components
func (r *GormPackageRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Package, error) {
	var rows []models.PackageModel
	query := applyPaging(r.scoped(ctx, tenantID, filter), filter, PackageSortFields)
	if err := query.Preload("Components").Find(&rows).Error; err != nil {
		return nil, err
	}
	pkgs := make([]catalog.Package, len(rows))
	for i := range rows {
		pkgs[i] = *rows[i].ToDomain()
	}
	return pkgs, nil
}

// CountForTenant counts packages matching the filter
func (r *GormPackageRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save writes the package header and replaces its component rows
func (r *GormPackageRepository) Save(ctx context.Context, pkg *catalog.Package) error {
	model := models.PackageModelFromDomain(pkg)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		ids := make([]uuid.UUID, len(model.Components))
		for i := range model.Components {
			ids[i] = model.Components[i].ID
		}
		stale := tx.Where("package_id = ?", pkg.ID)
		if len(ids) > 0 {
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Delete(&models.PackageComponentModel{}).Error; err != nil {
			return err
		}

		for i := range model.Components {
			if err := tx.Save(&model.Components[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormPackageRepository) scoped(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.PackageModel{}).Scopes(tenant.Scope(ctx, tenantID))
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return applyEquals(query, filter, "grade", "academic_year_id", "is_active")
}

var _ catalog.PackageRepository = (*GormPackageRepository)(nil)
