package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
)

// InventoryRecord holds on-hand stock for one catalog item.
// A missing record means zero stock.
type InventoryRecord struct {
	shared.BaseEntity
	TenantID          uuid.UUID
	ItemID            uuid.UUID
	Quantity          int
	LowStockThreshold int
	Version           int
}

// NewInventoryRecord creates an inventory record with the given opening quantity
func NewInventoryRecord(tenantID, itemID uuid.UUID, quantity, lowStockThreshold int) (*InventoryRecord, error) {
	if quantity < 0 {
		return nil, shared.InvalidInput("Quantity cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.InvalidInput("Low stock threshold cannot be negative")
	}
	return &InventoryRecord{
		BaseEntity:        shared.NewBaseEntity(),
		TenantID:          tenantID,
		ItemID:            itemID,
		Quantity:          quantity,
		LowStockThreshold: lowStockThreshold,
		Version:           1,
	}, nil
}

// Deduction is the outcome of taking stock for one demand
type Deduction struct {
	Demanded    int
	Available   int
	Fulfillable int
	Shortfall   int
	Remaining   int
}

// Deduct takes as much of the demanded quantity as is on hand.
// Quantity never drops below zero; the unmet part is returned as shortfall.
func (r *InventoryRecord) Deduct(demanded int) Deduction {
	d := ComputeDeduction(r.Quantity, demanded)
	r.Quantity = d.Remaining
	r.UpdatedAt = time.Now()
	r.Version++
	return d
}

// ComputeDeduction applies the settlement arithmetic to an available quantity
func ComputeDeduction(available, demanded int) Deduction {
	if available < 0 {
		available = 0
	}
	if demanded < 0 {
		demanded = 0
	}
	fulfillable := min(available, demanded)
	return Deduction{
		Demanded:    demanded,
		Available:   available,
		Fulfillable: fulfillable,
		Shortfall:   demanded - fulfillable,
		Remaining:   available - fulfillable,
	}
}

// Restock adds quantity to the record
func (r *InventoryRecord) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.InvalidInput("Restock quantity must be positive")
	}
	r.Quantity += quantity
	r.UpdatedAt = time.Now()
	r.Version++
	return nil
}

// SetQuantity overwrites the on-hand quantity (stock count correction)
func (r *InventoryRecord) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.InvalidInput("Quantity cannot be negative")
	}
	r.Quantity = quantity
	r.UpdatedAt = time.Now()
	r.Version++
	return nil
}

// SetLowStockThreshold changes the alert threshold
func (r *InventoryRecord) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.InvalidInput("Low stock threshold cannot be negative")
	}
	r.LowStockThreshold = threshold
	r.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether quantity is at or below the threshold
func (r *InventoryRecord) IsLowStock() bool {
	return r.LowStockThreshold > 0 && r.Quantity <= r.LowStockThreshold
}
