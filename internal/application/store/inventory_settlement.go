package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
)

// settleInventory deducts stock for every line of a PAID order. Each inventory
// row is locked before it is read, so concurrent settlements on the same item
// serialize. A missing record counts as zero stock. Shortfalls backorder the
// line and never fail the order.
func settleInventory(ctx context.Context, inventory catalog.InventoryRepository, order *store.StoreOrder) ([]shared.DomainEvent, error) {
	// Lock rows in item order to keep lock acquisition consistent across orders.
	idx := make([]int, len(order.Lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return order.Lines[idx[a]].ItemID.String() < order.Lines[idx[b]].ItemID.String()
	})

	var events []shared.DomainEvent
	for _, i := range idx {
		line := &order.Lines[i]

		record, err := inventory.FindByItemForUpdate(ctx, order.TenantID, line.ItemID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to lock inventory for item %s: %w", line.ItemID, err)
		}

		var d catalog.Deduction
		if record == nil {
			d = catalog.ComputeDeduction(0, line.Quantity)
		} else {
			wasLow := record.IsLowStock()
			d = record.Deduct(line.Quantity)
			if d.Fulfillable > 0 {
				if err := inventory.Save(ctx, record); err != nil {
					return nil, fmt.Errorf("failed to save inventory for item %s: %w", line.ItemID, err)
				}
				events = append(events, catalog.NewStockDeductedEvent(order.TenantID, line.ItemID, order.ID, d))
				if !wasLow && record.IsLowStock() {
					events = append(events, catalog.NewLowStockReachedEvent(record))
				}
			}
		}

		if err := order.ApplyDeduction(line.ID, d.Fulfillable, d.Shortfall); err != nil {
			return nil, err
		}
	}
	return events, nil
}
