package models

import (
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogItemModel is the persistence model for catalog.CatalogItem
type CatalogItemModel struct {
	TenantAggregateModel
	Name          string           `gorm:"type:varchar(200);not null"`
	Type          catalog.ItemType `gorm:"type:varchar(20);not null;index"`
	Category      string           `gorm:"type:varchar(100);index"`
	Grade         *string          `gorm:"type:varchar(50);index"`
	UnitPrice     decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	TaxPercentage decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "store_catalog_items"
}

// ToDomain converts the model to a domain CatalogItem
func (m *CatalogItemModel) ToDomain() *catalog.CatalogItem {
	return &catalog.CatalogItem{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Type:                m.Type,
		Category:            m.Category,
		Grade:               m.Grade,
		UnitPrice:           m.UnitPrice,
		TaxPercentage:       m.TaxPercentage,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the model from a domain CatalogItem
func (m *CatalogItemModel) FromDomain(i *catalog.CatalogItem) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.Name = i.Name
	m.Type = i.Type
	m.Category = i.Category
	m.Grade = i.Grade
	m.UnitPrice = i.UnitPrice
	m.TaxPercentage = i.TaxPercentage
	m.IsActive = i.IsActive
}

// CatalogItemModelFromDomain creates a model from a domain CatalogItem
func CatalogItemModelFromDomain(i *catalog.CatalogItem) *CatalogItemModel {
	m := &CatalogItemModel{}
	m.FromDomain(i)
	return m
}

// PackageModel is the persistence model for catalog.Package
type PackageModel struct {
	TenantAggregateModel
	Name            string                  `gorm:"type:varchar(200);not null"`
	Description     string                  `gorm:"type:text"`
	Grade           *string                 `gorm:"type:varchar(50);index"`
	ClassroomID     *uuid.UUID              `gorm:"type:uuid"`
	AcademicYearID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	TotalPrice      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	DiscountedPrice *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	IsActive        bool                    `gorm:"not null;default:true"`
	Components      []PackageComponentModel `gorm:"foreignKey:PackageID"`
}

// TableName returns the table name for GORM
func (PackageModel) TableName() string {
	return "store_packages"
}

// ToDomain converts the model to a domain Package
func (m *PackageModel) ToDomain() *catalog.Package {
	components := make([]catalog.PackageComponent, len(m.Components))
	for i := range m.Components {
		components[i] = m.Components[i].ToDomain()
	}
	return &catalog.Package{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		Grade:               m.Grade,
		ClassroomID:         m.ClassroomID,
		AcademicYearID:      m.AcademicYearID,
		Components:          components,
		TotalPrice:          m.TotalPrice,
		DiscountedPrice:     m.DiscountedPrice,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the model from a domain Package
func (m *PackageModel) FromDomain(p *catalog.Package) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Grade = p.Grade
	m.ClassroomID = p.ClassroomID
	m.AcademicYearID = p.AcademicYearID
	m.TotalPrice = p.TotalPrice
	m.DiscountedPrice = p.DiscountedPrice
	m.IsActive = p.IsActive
	m.Components = make([]PackageComponentModel, len(p.Components))
	for i := range p.Components {
		m.Components[i].FromDomain(p.Components[i])
		m.Components[i].PackageID = p.ID
	}
}

// PackageModelFromDomain creates a model from a domain Package
func PackageModelFromDomain(p *catalog.Package) *PackageModel {
	m := &PackageModel{}
	m.FromDomain(p)
	return m
}

// PackageComponentModel is one row of a package's bill of items
type PackageComponentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PackageID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName      string          `gorm:"type:varchar(200);not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PackageComponentModel) TableName() string {
	return "store_package_components"
}

// ToDomain converts the model to a domain PackageComponent
func (m *PackageComponentModel) ToDomain() catalog.PackageComponent {
	return catalog.PackageComponent{
		ID:            m.ID,
		PackageID:     m.PackageID,
		ItemID:        m.ItemID,
		ItemName:      m.ItemName,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TaxPercentage: m.TaxPercentage,
	}
}

// FromDomain populates the model from a domain PackageComponent
func (m *PackageComponentModel) FromDomain(c catalog.PackageComponent) {
	m.ID = c.ID
	m.PackageID = c.PackageID
	m.ItemID = c.ItemID
	m.ItemName = c.ItemName
	m.Quantity = c.Quantity
	m.UnitPrice = c.UnitPrice
	m.TaxPercentage = c.TaxPercentage
}
