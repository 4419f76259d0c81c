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

// PackageService composes and maintains item packages
type PackageService struct {
	packageRepo    catalog.PackageRepository
	itemRepo       catalog.CatalogItemRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPackageService creates a new PackageService
func NewPackageService(
	packageRepo catalog.PackageRepository,
	itemRepo catalog.CatalogItemRepository,
	logger *zap.Logger,
) *PackageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackageService{
		packageRepo: packageRepo,
		itemRepo:    itemRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *PackageService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreatePackage resolves every component item, snapshots its price and tax,
// and persists the package with its components in one save.
func (s *PackageService) CreatePackage(ctx context.Context, tenantID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error) {
	specs := make([]catalog.ComponentSpec, len(req.Components))
	ids := make([]uuid.UUID, 0, len(req.Components))
	for i, c := range req.Components {
		specs[i] = catalog.ComponentSpec{ItemID: c.ItemID, Quantity: c.Quantity}
		ids = append(ids, c.ItemID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load package items: %w", err)
	}
	byID := make(map[uuid.UUID]*catalog.CatalogItem, len(items))
	for i := range items {
		if !items[i].IsActive {
			return nil, shared.InvalidInput("Catalog item is inactive: "+items[i].Name)
		}
		byID[items[i].ID] = &items[i]
	}

	pkg, err := catalog.NewPackage(tenantID, req.Name, req.AcademicYearID, specs, byID)
	if err != nil {
		return nil, err
	}
	pkg.Description = req.Description
	if req.Grade != nil || req.ClassroomID != nil {
		pkg.SetScope(req.Grade, req.ClassroomID)
	}
	if req.DiscountedPrice != nil {
		if err := pkg.SetDiscountedPrice(req.DiscountedPrice); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		pkg.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to save package: %w", err)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, pkg)

	s.logger.Info("package created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("package_id", pkg.ID.String()),
		zap.Int("components", len(pkg.Components)),
		zap.String("total_price", pkg.TotalPrice.String()),
	)

	response := ToPackageResponse(pkg)
	return &response, nil
}

// UpdatePackage applies a partial update. The total price stays as composed.
func (s *PackageService) UpdatePackage(ctx context.Context, tenantID, id uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error) {
	pkg, err := s.findPackage(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name, description := pkg.Name, pkg.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := pkg.Rename(name, description); err != nil {
			return nil, err
		}
	}

	if req.Grade != nil || req.ClassroomID != nil || req.ClearClassroom {
		grade, classroomID := pkg.Grade, pkg.ClassroomID
		if req.Grade != nil {
			grade = req.Grade
		}
		if req.ClassroomID != nil {
			classroomID = req.ClassroomID
		}
		if req.ClearClassroom {
			classroomID = nil
		}
		pkg.SetScope(grade, classroomID)
	}

	if req.ClearDiscount {
		if err := pkg.SetDiscountedPrice(nil); err != nil {
			return nil, err
		}
	} else if req.DiscountedPrice != nil {
		if err := pkg.SetDiscountedPrice(req.DiscountedPrice); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		pkg.SetActive(*req.IsActive)
	}

	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to save package: %w", err)
	}

	response := ToPackageResponse(pkg)
	return &response, nil
}

// GetPackage returns a package with its components
func (s *PackageService) GetPackage(ctx context.Context, tenantID, id uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.findPackage(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// ListPackages lists packages with pagination
func (s *PackageService) ListPackages(ctx context.Context, tenantID uuid.UUID, filter PackageListFilter) ([]PackageResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, "", "", filter.Search)
	if filter.Grade != "" {
		domainFilter = domainFilter.WithFilter("grade", filter.Grade)
	}
	if filter.AcademicYearID != nil {
		domainFilter = domainFilter.WithFilter("academic_year_id", *filter.AcademicYearID)
	}
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithFilter("is_active", *filter.IsActive)
	}

	packages, err := s.packageRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.packageRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PackageResponse, len(packages))
	for i := range packages {
		responses[i] = ToPackageResponse(&packages[i])
	}
	return responses, total, nil
}

func (s *PackageService) findPackage(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Package, error) {
	pkg, err := s.packageRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}
