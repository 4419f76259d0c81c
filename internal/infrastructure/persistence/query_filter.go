package persistence

import (
	"time"

	"github.com/schoolstore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPaging orders and pages a query using a whitelisted sort field
func applyPaging(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Paged() {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	return query
}

// applyEquals adds "column = value" for each listed key present in the filter
func applyEquals(query *gorm.DB, filter shared.Filter, columns ...string) *gorm.DB {
	for _, column := range columns {
		value, ok := filter.Filters[column]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		query = query.Where(column+" = ?", value)
	}
	return query
}

// applyDateRange bounds created_at with the start_date and end_date filters
func applyDateRange(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if start, ok := filter.Filters["start_date"].(time.Time); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.Filters["end_date"].(time.Time); ok {
		query = query.Where("created_at <= ?", end)
	}
	return query
}
