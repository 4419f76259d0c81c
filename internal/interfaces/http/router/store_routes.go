package router

import (
	"github.com/schoolstore/backend/internal/interfaces/http/handler"
)

// StoreHandlers are the handlers behind /store
type StoreHandlers struct {
	Items    *handler.ItemHandler
	Packages *handler.PackageHandler
	Orders   *handler.OrderHandler
	Reports  *handler.ReportHandler
}

// NewStoreGroup builds the /store route group
func NewStoreGroup(h StoreHandlers) *DomainGroup {
	store := NewDomainGroup("store", "/store")

	store.Group("items", "/items").
		POST("", h.Items.Create).
		GET("", h.Items.List).
		GET("/:id", h.Items.Get).
		GET("/:id/stock", h.Items.GetStock).
		PUT("/:id/stock", h.Items.AdjustStock)
	store.GET("/stock/low", h.Items.ListLowStock)

	store.Group("packages", "/packages").
		POST("", h.Packages.Create).
		GET("", h.Packages.List).
		GET("/:id", h.Packages.Get).
		PATCH("/:id", h.Packages.Update).
		POST("/:id/assign", h.Packages.Assign)

	store.Group("orders", "/orders").
		POST("", h.Orders.Create).
		GET("", h.Orders.List).
		GET("/:id", h.Orders.Get).
		POST("/:id/settle", h.Orders.Settle).
		POST("/:id/fulfill", h.Orders.Fulfill).
		POST("/:id/ledger/backfill", h.Orders.BackfillLedger)

	store.Group("reports", "/reports").
		GET("/sales-summary", h.Reports.SalesSummary)

	return store
}
