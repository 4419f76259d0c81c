package shared

// MaxPageSize caps list queries regardless of what the caller asks for
const MaxPageSize = 100

// Filter carries paging, ordering and column filters for list queries.
// Filters keys are column names; repositories decide which ones they honour.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter is page 1 of 20, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// WithFilter returns a copy with key set to value
func (f Filter) WithFilter(key string, value interface{}) Filter {
	filters := make(map[string]interface{}, len(f.Filters)+1)
	for k, v := range f.Filters {
		filters[k] = v
	}
	filters[key] = value
	f.Filters = filters
	return f
}

// Paged reports whether the filter asks for a page rather than every row
func (f Filter) Paged() bool {
	return f.Page > 0 && f.PageSize > 0
}

// Limit is the page size capped at MaxPageSize
func (f Filter) Limit() int {
	if f.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return f.PageSize
}

// Offset is the number of rows before the requested page
func (f Filter) Offset() int {
	if !f.Paged() {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}
