package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"invalid value returns DESC", "sideways", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE store_orders;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		expected string
	}{
		{"empty string returns default", "", CatalogItemSortFields, "created_at"},
		{"whitelisted item field", "unit_price", CatalogItemSortFields, "unit_price"},
		{"field of another table is rejected", "unit_price", PackageSortFields, "created_at"},
		{"order field", "paid_at", StoreOrderSortFields, "paid_at"},
		{"sql injection attempt returns default", "name; DROP TABLE students;--", CatalogItemSortFields, "created_at"},
		{"case sensitive", "NAME", CatalogItemSortFields, "created_at"},
		{"whitespace around valid field", "  name  ", PackageSortFields, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, "created_at"))
		})
	}
}
