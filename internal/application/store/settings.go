package store

import (
	"context"
	"time"

	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/shopspring/decimal"
)

// Settings are the tunables of the store services
type Settings struct {
	// LedgerCategoryName is the INCOME category store sales are booked under
	LedgerCategoryName string
	// TransactionPrefix prefixes generated ledger transaction numbers
	TransactionPrefix string
	// AdhocFeeDueDays is the due window of fees raised for ad-hoc orders
	AdhocFeeDueDays int
	// BulkFeeDueDays is the due window of fees raised by bulk assignment
	BulkFeeDueDays int
	// SummaryCacheTTL bounds how long a sales summary is served from cache
	SummaryCacheTTL time.Duration
}

// DefaultSettings returns the production defaults
func DefaultSettings() Settings {
	return Settings{
		LedgerCategoryName: "Store Sales",
		TransactionPrefix:  "STS",
		AdhocFeeDueDays:    7,
		BulkFeeDueDays:     30,
		SummaryCacheTTL:    5 * time.Minute,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.LedgerCategoryName == "" {
		s.LedgerCategoryName = d.LedgerCategoryName
	}
	if s.TransactionPrefix == "" {
		s.TransactionPrefix = d.TransactionPrefix
	}
	if s.AdhocFeeDueDays <= 0 {
		s.AdhocFeeDueDays = d.AdhocFeeDueDays
	}
	if s.BulkFeeDueDays <= 0 {
		s.BulkFeeDueDays = d.BulkFeeDueDays
	}
	if s.SummaryCacheTTL <= 0 {
		s.SummaryCacheTTL = d.SummaryCacheTTL
	}
	return s
}

// Metrics records store business metrics
type Metrics interface {
	OrderCreated(ctx context.Context, source store.OrderSource)
	OrderSettled(ctx context.Context, amount decimal.Decimal)
	UnitsBackordered(ctx context.Context, units int)
	DegradedPosting(ctx context.Context)
	BulkAssigned(ctx context.Context, created, skipped, failed int)
}

type noopMetrics struct{}

func (noopMetrics) OrderCreated(context.Context, store.OrderSource) {}
func (noopMetrics) OrderSettled(context.Context, decimal.Decimal)   {}
func (noopMetrics) UnitsBackordered(context.Context, int)           {}
func (noopMetrics) DegradedPosting(context.Context)                 {}
func (noopMetrics) BulkAssigned(context.Context, int, int, int)     {}
