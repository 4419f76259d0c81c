package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrPackageNotFound is returned when a package id does not resolve
var ErrPackageNotFound = shared.NewDomainError("PACKAGE_NOT_FOUND", "Package not found")

// PackageComponent is one (item, quantity) entry of a package.
// UnitPrice and TaxPercentage are captured when the package is composed.
type PackageComponent struct {
	ID            uuid.UUID
	PackageID     uuid.UUID
	ItemID        uuid.UUID
	ItemName      string
	Quantity      int
	UnitPrice     decimal.Decimal
	TaxPercentage decimal.Decimal
}

// Subtotal returns unit price × quantity
func (c PackageComponent) Subtotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// ComponentSpec is a request to include an item in a package
type ComponentSpec struct {
	ItemID   uuid.UUID
	Quantity int
}

// Package is a named bundle of catalog items sold as a unit
type Package struct {
	shared.TenantAggregateRoot
	Name            string
	Description     string
	Grade           *string
	ClassroomID     *uuid.UUID
	AcademicYearID  uuid.UUID
	Components      []PackageComponent
	TotalPrice      decimal.Decimal
	DiscountedPrice *decimal.Decimal
	IsActive        bool
}

// NewPackage composes a package from resolved items. items must contain every
// item referenced by specs; TotalPrice is computed here and never again.
func NewPackage(tenantID uuid.UUID, name string, academicYearID uuid.UUID, specs []ComponentSpec, items map[uuid.UUID]*CatalogItem) (*Package, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Package name cannot be empty")
	}
	if academicYearID == uuid.Nil {
		return nil, shared.InvalidInput("Academic year is required")
	}
	if len(specs) == 0 {
		return nil, shared.InvalidInput("Package must contain at least one item")
	}

	pkg := &Package{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		AcademicYearID:      academicYearID,
		Components:          make([]PackageComponent, 0, len(specs)),
		TotalPrice:          decimal.Zero,
		IsActive:            true,
	}

	for _, spec := range specs {
		if spec.Quantity <= 0 {
			return nil, shared.InvalidInput("Component quantity must be positive")
		}
		item, ok := items[spec.ItemID]
		if !ok || item == nil {
			return nil, shared.NewDomainError(ErrItemNotFound.Code, "Catalog item not found: "+spec.ItemID.String())
		}
		component := PackageComponent{
			ID:            uuid.New(),
			PackageID:     pkg.ID,
			ItemID:        item.ID,
			ItemName:      item.Name,
			Quantity:      spec.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxPercentage: item.TaxPercentage,
		}
		pkg.Components = append(pkg.Components, component)
		pkg.TotalPrice = pkg.TotalPrice.Add(component.Subtotal())
	}

	pkg.AddDomainEvent(NewPackageCreatedEvent(pkg))
	return pkg, nil
}

// EffectivePrice is the discounted price when set, otherwise the total price
func (p *Package) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.TotalPrice
}

// DiscountAmount is how much the effective price is below the total price
func (p *Package) DiscountAmount() decimal.Decimal {
	discount := p.TotalPrice.Sub(p.EffectivePrice())
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// Rename changes the display name and description
func (p *Package) Rename(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInput("Package name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.touch()
	return nil
}

// SetScope sets the grade/classroom scope; empty values clear it
func (p *Package) SetScope(grade *string, classroomID *uuid.UUID) {
	if grade != nil && strings.TrimSpace(*grade) == "" {
		grade = nil
	}
	p.Grade = grade
	p.ClassroomID = classroomID
	p.touch()
}

// SetDiscountedPrice overrides the sale price; nil removes the override.
// TotalPrice is not affected.
func (p *Package) SetDiscountedPrice(price *decimal.Decimal) error {
	if price != nil {
		if price.IsNegative() {
			return shared.InvalidInput("Discounted price cannot be negative")
		}
		if price.GreaterThan(p.TotalPrice) {
			return shared.InvalidInput("Discounted price cannot exceed the package total")
		}
	}
	p.DiscountedPrice = price
	p.touch()
	return nil
}

// SetActive toggles whether the package can be assigned
func (p *Package) SetActive(active bool) {
	p.IsActive = active
	p.touch()
}

// ComponentItemIDs returns the distinct item ids used by the package
func (p *Package) ComponentItemIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(p.Components))
	ids := make([]uuid.UUID, 0, len(p.Components))
	for _, c := range p.Components {
		if _, ok := seen[c.ItemID]; ok {
			continue
		}
		seen[c.ItemID] = struct{}{}
		ids = append(ids, c.ItemID)
	}
	return ids
}

func (p *Package) touch() {
	p.Touch()
	p.IncrementVersion()
}
