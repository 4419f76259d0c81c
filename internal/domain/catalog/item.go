package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemType classifies what a catalog item is
type ItemType string

const (
	ItemTypeBook       ItemType = "BOOK"
	ItemTypeUniform    ItemType = "UNIFORM"
	ItemTypeStationery ItemType = "STATIONERY"
	ItemTypeOther      ItemType = "OTHER"
)

// IsValid reports whether the item type is one of the known values
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeBook, ItemTypeUniform, ItemTypeStationery, ItemTypeOther:
		return true
	}
	return false
}

// String returns the string representation
func (t ItemType) String() string {
	return string(t)
}

var hundred = decimal.NewFromInt(100)

// ErrItemNotFound is returned when a referenced catalog item does not resolve
var ErrItemNotFound = shared.NewDomainError("ITEM_NOT_FOUND", "Catalog item not found")

// CatalogItem is a sellable item in the school store
type CatalogItem struct {
	shared.TenantAggregateRoot
	Name          string
	Type          ItemType
	Category      string
	Grade         *string
	UnitPrice     decimal.Decimal
	TaxPercentage decimal.Decimal
	IsActive      bool
}

// NewCatalogItem creates a new active catalog item
func NewCatalogItem(tenantID uuid.UUID, name string, itemType ItemType, category string, unitPrice, taxPercentage decimal.Decimal) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.InvalidInput("Item name cannot exceed 200 characters")
	}
	if !itemType.IsValid() {
		return nil, shared.InvalidInput("Invalid item type: "+string(itemType))
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	if err := validateTaxPercentage(taxPercentage); err != nil {
		return nil, err
	}

	item := &CatalogItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Type:                itemType,
		Category:            strings.TrimSpace(category),
		UnitPrice:           unitPrice,
		TaxPercentage:       taxPercentage,
		IsActive:            true,
	}
	item.AddDomainEvent(NewCatalogItemCreatedEvent(item))
	return item, nil
}

// SetGrade scopes the item to a grade; an empty grade clears the scope
func (i *CatalogItem) SetGrade(grade string) {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		i.Grade = nil
	} else {
		i.Grade = &grade
	}
	i.Touch()
}

// ChangePrice updates the unit price. Existing packages and orders keep
// the price they captured.
func (i *CatalogItem) ChangePrice(unitPrice decimal.Decimal) error {
	if err := validateUnitPrice(unitPrice); err != nil {
		return err
	}
	i.UnitPrice = unitPrice
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the item
func (i *CatalogItem) Deactivate() {
	i.IsActive = false
	i.Touch()
	i.IncrementVersion()
}

// Activate re-enables the item for sale
func (i *CatalogItem) Activate() {
	i.IsActive = true
	i.Touch()
	i.IncrementVersion()
}

// TaxOn returns the flat percentage tax for a line amount, rounded to cents
func (i *CatalogItem) TaxOn(amount decimal.Decimal) decimal.Decimal {
	return TaxOn(amount, i.TaxPercentage)
}

// TaxOn computes amount × pct / 100 rounded to two decimal places
func TaxOn(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

func validateUnitPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.InvalidInput("Unit price must be positive")
	}
	return nil
}

func validateTaxPercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return shared.InvalidInput("Tax percentage must be between 0 and 100")
	}
	return nil
}
