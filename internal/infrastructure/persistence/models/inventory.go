package models

import (
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
)

// InventoryRecordModel is the persistence model for catalog.InventoryRecord.
// One row per (tenant, item).
type InventoryRecordModel struct {
	BaseModel
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_inventory_tenant_item,priority:1"`
	ItemID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_inventory_tenant_item,priority:2"`
	Quantity          int       `gorm:"not null;default:0;check:quantity >= 0"`
	LowStockThreshold int       `gorm:"not null;default:0"`
	Version           int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (InventoryRecordModel) TableName() string {
	return "store_inventory"
}

// ToDomain converts the model to a domain InventoryRecord
func (m *InventoryRecordModel) ToDomain() *catalog.InventoryRecord {
	return &catalog.InventoryRecord{
		BaseEntity:        m.BaseModel.ToDomain(),
		TenantID:          m.TenantID,
		ItemID:            m.ItemID,
		Quantity:          m.Quantity,
		LowStockThreshold: m.LowStockThreshold,
		Version:           m.Version,
	}
}

// FromDomain populates the model from a domain InventoryRecord
func (m *InventoryRecordModel) FromDomain(r *catalog.InventoryRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.TenantID = r.TenantID
	m.ItemID = r.ItemID
	m.Quantity = r.Quantity
	m.LowStockThreshold = r.LowStockThreshold
	m.Version = r.Version
}

// InventoryRecordModelFromDomain creates a model from a domain InventoryRecord
func InventoryRecordModelFromDomain(r *catalog.InventoryRecord) *InventoryRecordModel {
	m := &InventoryRecordModel{}
	m.FromDomain(r)
	return m
}
