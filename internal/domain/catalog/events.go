package catalog

import (
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeCatalogItem     = "CatalogItem"
	AggregateTypePackage         = "Package"
	AggregateTypeInventoryRecord = "InventoryRecord"
)

// Event type constants
const (
	EventTypeCatalogItemCreated = "CatalogItemCreated"
	EventTypePackageCreated     = "PackageCreated"
	EventTypeStockDeducted      = "StockDeducted"
	EventTypeLowStockReached    = "LowStockReached"
)

// CatalogItemCreatedEvent is published when an item is added to the catalog
type CatalogItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	ItemType  ItemType        `json:"item_type"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewCatalogItemCreatedEvent creates a new CatalogItemCreatedEvent
func NewCatalogItemCreatedEvent(item *CatalogItem) *CatalogItemCreatedEvent {
	return &CatalogItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogItemCreated, AggregateTypeCatalogItem, item.ID, item.TenantID),
		ItemID:          item.ID,
		Name:            item.Name,
		ItemType:        item.Type,
		UnitPrice:       item.UnitPrice,
	}
}

// PackageCreatedEvent is published when a package is composed
type PackageCreatedEvent struct {
	shared.BaseDomainEvent
	PackageID      uuid.UUID       `json:"package_id"`
	Name           string          `json:"name"`
	AcademicYearID uuid.UUID       `json:"academic_year_id"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	ComponentCount int             `json:"component_count"`
}

// NewPackageCreatedEvent creates a new PackageCreatedEvent
func NewPackageCreatedEvent(pkg *Package) *PackageCreatedEvent {
	return &PackageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePackageCreated, AggregateTypePackage, pkg.ID, pkg.TenantID),
		PackageID:       pkg.ID,
		Name:            pkg.Name,
		AcademicYearID:  pkg.AcademicYearID,
		TotalPrice:      pkg.TotalPrice,
		ComponentCount:  len(pkg.Components),
	}
}

// StockDeductedEvent is published when settlement takes stock for an order line
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID `json:"item_id"`
	OrderID     uuid.UUID `json:"order_id"`
	Demanded    int       `json:"demanded"`
	Fulfillable int       `json:"fulfillable"`
	Shortfall   int       `json:"shortfall"`
	Remaining   int       `json:"remaining"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(tenantID, itemID, orderID uuid.UUID, d Deduction) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeInventoryRecord, itemID, tenantID),
		ItemID:          itemID,
		OrderID:         orderID,
		Demanded:        d.Demanded,
		Fulfillable:     d.Fulfillable,
		Shortfall:       d.Shortfall,
		Remaining:       d.Remaining,
	}
}

// LowStockReachedEvent is published when a deduction leaves stock at or below the threshold
type LowStockReachedEvent struct {
	shared.BaseDomainEvent
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
}

// NewLowStockReachedEvent creates a new LowStockReachedEvent
func NewLowStockReachedEvent(record *InventoryRecord) *LowStockReachedEvent {
	return &LowStockReachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockReached, AggregateTypeInventoryRecord, record.ItemID, record.TenantID),
		ItemID:          record.ItemID,
		Quantity:        record.Quantity,
		Threshold:       record.LowStockThreshold,
	}
}
