package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to add a catalog item
type CreateItemRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	Type              string          `json:"type" binding:"required,oneof=BOOK UNIFORM STATIONERY OTHER"`
	Category          string          `json:"category" binding:"max=100"`
	Grade             string          `json:"grade" binding:"max=50"`
	UnitPrice         decimal.Decimal `json:"unit_price" binding:"decimal_gt0"`
	TaxPercentage     decimal.Decimal `json:"tax_percentage" binding:"tax_pct"`
	OpeningStock      *int            `json:"opening_stock" binding:"omitempty,min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" binding:"omitempty,min=0"`
	CreatedBy         *uuid.UUID      `json:"-"`
}

// ItemListFilter represents filter options for listing items
type ItemListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=BOOK UNIFORM STATIONERY OTHER"`
	Category string `form:"category"`
	Grade    string `form:"grade"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Grade         *string         `json:"grade,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response
func ToItemResponse(item *catalog.CatalogItem) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		TenantID:      item.TenantID,
		Name:          item.Name,
		Type:          item.Type.String(),
		Category:      item.Category,
		Grade:         item.Grade,
		UnitPrice:     item.UnitPrice,
		TaxPercentage: item.TaxPercentage,
		IsActive:      item.IsActive,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// Stock adjustment modes
const (
	StockModeSet = "SET"
	StockModeAdd = "ADD"
)

// AdjustStockRequest sets or adds on-hand quantity for an item
type AdjustStockRequest struct {
	Mode              string `json:"mode" binding:"required,oneof=SET ADD"`
	Quantity          int    `json:"quantity" binding:"min=0"`
	LowStockThreshold *int   `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// StockResponse represents on-hand stock for an item
type StockResponse struct {
	ItemID            uuid.UUID `json:"item_id"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToStockResponse converts an inventory record to a response
func ToStockResponse(record *catalog.InventoryRecord) StockResponse {
	return StockResponse{
		ItemID:            record.ItemID,
		Quantity:          record.Quantity,
		LowStockThreshold: record.LowStockThreshold,
		IsLowStock:        record.IsLowStock(),
		UpdatedAt:         record.UpdatedAt,
	}
}

// ComponentRequest is one item of a package being composed
type ComponentRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CreatePackageRequest represents a request to compose a package
type CreatePackageRequest struct {
	Name            string             `json:"name" binding:"required,min=1,max=200"`
	Description     string             `json:"description" binding:"max=2000"`
	Grade           *string            `json:"grade" binding:"omitempty,max=50"`
	ClassroomID     *uuid.UUID         `json:"classroom_id"`
	AcademicYearID  uuid.UUID          `json:"academic_year_id" binding:"required"`
	DiscountedPrice *decimal.Decimal   `json:"discounted_price" binding:"omitempty,decimal_gt0"`
	Components      []ComponentRequest `json:"components" binding:"required,min=1,dive"`
	CreatedBy       *uuid.UUID         `json:"-"`
}

// UpdatePackageRequest is a partial update; total price is never recomputed
type UpdatePackageRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	Grade           *string          `json:"grade" binding:"omitempty,max=50"`
	ClassroomID     *uuid.UUID       `json:"classroom_id"`
	ClearClassroom  bool             `json:"clear_classroom"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price" binding:"omitempty,decimal_gt0"`
	ClearDiscount   bool             `json:"clear_discount"`
	IsActive        *bool            `json:"is_active"`
}

// PackageListFilter represents filter options for listing packages
type PackageListFilter struct {
	Search         string     `form:"search"`
	Grade          string     `form:"grade"`
	AcademicYearID *uuid.UUID `form:"academic_year_id"`
	IsActive       *bool      `form:"is_active"`
	Page           int        `form:"page" binding:"min=0"`
	PageSize       int        `form:"page_size" binding:"min=0,max=100"`
}

// ComponentResponse represents a package component
type ComponentResponse struct {
	ID            uuid.UUID       `json:"id"`
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// PackageResponse represents a package in API responses
type PackageResponse struct {
	ID              uuid.UUID           `json:"id"`
	TenantID        uuid.UUID           `json:"tenant_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Grade           *string             `json:"grade,omitempty"`
	ClassroomID     *uuid.UUID          `json:"classroom_id,omitempty"`
	AcademicYearID  uuid.UUID           `json:"academic_year_id"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	DiscountedPrice *decimal.Decimal    `json:"discounted_price,omitempty"`
	EffectivePrice  decimal.Decimal     `json:"effective_price"`
	IsActive        bool                `json:"is_active"`
	Components      []ComponentResponse `json:"components"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToPackageResponse converts a domain package to a response
func ToPackageResponse(pkg *catalog.Package) PackageResponse {
	components := make([]ComponentResponse, len(pkg.Components))
	for i, c := range pkg.Components {
		components[i] = ComponentResponse{
			ID:            c.ID,
			ItemID:        c.ItemID,
			ItemName:      c.ItemName,
			Quantity:      c.Quantity,
			UnitPrice:     c.UnitPrice,
			TaxPercentage: c.TaxPercentage,
			Subtotal:      c.Subtotal(),
		}
	}
	return PackageResponse{
		ID:              pkg.ID,
		TenantID:        pkg.TenantID,
		Name:            pkg.Name,
		Description:     pkg.Description,
		Grade:           pkg.Grade,
		ClassroomID:     pkg.ClassroomID,
		AcademicYearID:  pkg.AcademicYearID,
		TotalPrice:      pkg.TotalPrice,
		DiscountedPrice: pkg.DiscountedPrice,
		EffectivePrice:  pkg.EffectivePrice(),
		IsActive:        pkg.IsActive,
		Components:      components,
		CreatedAt:       pkg.CreatedAt,
		UpdatedAt:       pkg.UpdatedAt,
	}
}
