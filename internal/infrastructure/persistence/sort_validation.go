package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, defaultField otherwise
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CatalogItemSortFields contains allowed sort fields for catalog items
var CatalogItemSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"category":   true,
	"grade":      true,
	"unit_price": true,
}

// PackageSortFields contains allowed sort fields for packages
var PackageSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"grade":       true,
	"total_price": true,
}

// StoreOrderSortFields contains allowed sort fields for store orders
var StoreOrderSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"total_amount":   true,
	"status":         true,
	"payment_status": true,
	"paid_at":        true,
}
