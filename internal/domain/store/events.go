package store

import (
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeStoreOrder is the aggregate type for store order events
const AggregateTypeStoreOrder = "StoreOrder"

// Event type constants
const (
	EventTypeStoreOrderCreated    = "StoreOrderCreated"
	EventTypeStoreOrderSettled    = "StoreOrderSettled"
	EventTypeStoreOrderFulfilled  = "StoreOrderFulfilled"
	EventTypeOrderLineBackordered = "OrderLineBackordered"
)

// StoreOrderCreatedEvent is published when an order is built
type StoreOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	StudentID   uuid.UUID       `json:"student_id"`
	Source      OrderSource     `json:"source"`
	PackageID   *uuid.UUID      `json:"package_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
}

// NewStoreOrderCreatedEvent creates a new StoreOrderCreatedEvent
func NewStoreOrderCreatedEvent(o *StoreOrder) *StoreOrderCreatedEvent {
	return &StoreOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreOrderCreated, AggregateTypeStoreOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		StudentID:       o.StudentID,
		Source:          o.Source,
		PackageID:       o.PackageID,
		TotalAmount:     o.TotalAmount,
		LineCount:       len(o.Lines),
	}
}

// StoreOrderSettledEvent is published when an order becomes PAID
type StoreOrderSettledEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	StudentID     uuid.UUID       `json:"student_id"`
	FeeID         *uuid.UUID      `json:"fee_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
}

// NewStoreOrderSettledEvent creates a new StoreOrderSettledEvent
func NewStoreOrderSettledEvent(o *StoreOrder) *StoreOrderSettledEvent {
	return &StoreOrderSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreOrderSettled, AggregateTypeStoreOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		StudentID:       o.StudentID,
		FeeID:           o.FeeID,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
	}
}

// StoreOrderFulfilledEvent is published when order lines are issued
type StoreOrderFulfilledEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID   `json:"order_id"`
	Status   OrderStatus `json:"status"`
	IssuedBy uuid.UUID   `json:"issued_by"`
}

// NewStoreOrderFulfilledEvent creates a new StoreOrderFulfilledEvent
func NewStoreOrderFulfilledEvent(o *StoreOrder, issuer uuid.UUID) *StoreOrderFulfilledEvent {
	return &StoreOrderFulfilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreOrderFulfilled, AggregateTypeStoreOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		Status:          o.Status,
		IssuedBy:        issuer,
	}
}

// OrderLineBackorderedEvent is published when settlement could not cover a line
type OrderLineBackorderedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	LineID    uuid.UUID `json:"line_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Shortfall int       `json:"shortfall"`
}

// NewOrderLineBackorderedEvent creates a new OrderLineBackorderedEvent
func NewOrderLineBackorderedEvent(o *StoreOrder, line *OrderLine) *OrderLineBackorderedEvent {
	return &OrderLineBackorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderLineBackordered, AggregateTypeStoreOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		LineID:          line.ID,
		ItemID:          line.ItemID,
		Shortfall:       line.ShortfallQuantity,
	}
}
