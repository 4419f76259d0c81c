package telemetry

import (
	"context"
	"errors"

	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StoreMetrics records settlement activity. Labels stay low-cardinality:
// tenant and order ids go to spans and logs, not to metric attributes.
type StoreMetrics struct {
	ordersCreated    *Counter
	ordersSettled    *Counter
	settledAmount    *Histogram
	unitsBackordered *Counter
	degradedPostings *Counter
	bulkAssignments  *Counter
}

// NewStoreMetrics creates the store instruments on meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &StoreMetrics{}
	var err error
	if m.ordersCreated, err = NewCounter(meter, "store_orders_created_total", "Store orders created", "{order}"); err != nil {
		return nil, err
	}
	if m.ordersSettled, err = NewCounter(meter, "store_orders_settled_total", "Store orders settled", "{order}"); err != nil {
		return nil, err
	}
	if m.settledAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "store_order_settled_amount",
		Description: "Total amount of settled orders",
		Unit:        "{currency}",
		Boundaries:  OrderAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.unitsBackordered, err = NewCounter(meter, "store_units_backordered_total", "Units settled without stock", "{unit}"); err != nil {
		return nil, err
	}
	if m.degradedPostings, err = NewCounter(meter, "store_ledger_postings_skipped_total", "Settlements with no active financial period", "{posting}"); err != nil {
		return nil, err
	}
	if m.bulkAssignments, err = NewCounter(meter, "store_bulk_assignments_total", "Bulk package assignment outcomes per student", "{student}"); err != nil {
		return nil, err
	}
	return m, nil
}

// OrderCreated counts a new order by source
func (m *StoreMetrics) OrderCreated(ctx context.Context, source store.OrderSource) {
	m.ordersCreated.Inc(ctx, AttrOrderSource.String(string(source)))
}

// OrderSettled counts a settlement and records its amount
func (m *StoreMetrics) OrderSettled(ctx context.Context, amount decimal.Decimal) {
	m.ordersSettled.Inc(ctx)
	m.settledAmount.Record(ctx, amount.InexactFloat64())
}

// UnitsBackordered counts shortfall units
func (m *StoreMetrics) UnitsBackordered(ctx context.Context, units int) {
	if units > 0 {
		m.unitsBackordered.Add(ctx, int64(units))
	}
}

// DegradedPosting counts a settlement that skipped the ledger
func (m *StoreMetrics) DegradedPosting(ctx context.Context) {
	m.degradedPostings.Inc(ctx)
}

// BulkAssigned records the per-student outcomes of one bulk run
func (m *StoreMetrics) BulkAssigned(ctx context.Context, created, skipped, failed int) {
	for outcome, n := range map[string]int{"created": created, "skipped": skipped, "failed": failed} {
		if n > 0 {
			m.bulkAssignments.Add(ctx, int64(n), AttrOutcome.String(outcome))
		}
	}
}
