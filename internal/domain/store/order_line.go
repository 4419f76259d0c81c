package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineSpec is a priced request for one order line
type LineSpec struct {
	ItemID        uuid.UUID
	ItemName      string
	Quantity      int
	UnitPrice     decimal.Decimal
	TaxPercentage decimal.Decimal
}

// OrderLine is one item of a store order. UnitPrice and TaxPercentage are
// captured when the order is built.
type OrderLine struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	ItemID            uuid.UUID
	ItemName          string
	Quantity          int
	UnitPrice         decimal.Decimal
	TaxPercentage     decimal.Decimal
	LineTax           decimal.Decimal
	FulfilledQuantity int
	Issued            bool
	IssuedAt          *time.Time
	IssuedBy          *uuid.UUID
	Backordered       bool
	ShortfallQuantity int
	BackorderNote     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LineTotal returns unit price × quantity (tax excluded)
func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GrossTotal returns line total plus line tax
func (l *OrderLine) GrossTotal() decimal.Decimal {
	return l.LineTotal().Add(l.LineTax)
}

func (l *OrderLine) applyDeduction(fulfillable, shortfall int) {
	l.FulfilledQuantity = fulfillable
	l.ShortfallQuantity = shortfall
	l.Backordered = shortfall > 0
	if l.Backordered {
		l.BackorderNote = fmt.Sprintf("Backordered %d of %d: only %d in stock at settlement", shortfall, l.Quantity, fulfillable)
	} else {
		l.BackorderNote = ""
	}
	l.UpdatedAt = time.Now()
}

func (l *OrderLine) stampIssued(issuer uuid.UUID, at time.Time) {
	l.Issued = true
	l.IssuedAt = &at
	l.IssuedBy = &issuer
	l.UpdatedAt = at
}
