package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary is an aggregate view of store sales for a tenant
type SalesSummary struct {
	TotalOrders        int64
	PaidOrders         int64
	UnpaidOrders       int64
	FulfilledOrders    int64
	PartiallyFulfilled int64
	GrossRevenue       decimal.Decimal
	TaxCollected       decimal.Decimal
	OutstandingAmount  decimal.Decimal
	UnitsSold          int64
	BackorderedLines   int64
	BackorderedUnits   int64
	TopItems           []ItemSales
}

// ItemSales is revenue for one item over PAID orders
type ItemSales struct {
	ItemID   uuid.UUID
	ItemName string
	Quantity int64
	Revenue  decimal.Decimal
}

// EmptySalesSummary returns a zero-valued summary
func EmptySalesSummary() *SalesSummary {
	return &SalesSummary{
		GrossRevenue:      decimal.Zero,
		TaxCollected:      decimal.Zero,
		OutstandingAmount: decimal.Zero,
		TopItems:          []ItemSales{},
	}
}
