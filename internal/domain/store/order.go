package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound is returned when an order id does not resolve
	ErrOrderNotFound = shared.NewDomainError("ORDER_NOT_FOUND", "Store order not found")
	// ErrPackageAlreadyAssigned is returned when storage already holds an order
	// for the same student, package and academic year
	ErrPackageAlreadyAssigned = shared.NewDomainError("PACKAGE_ALREADY_ASSIGNED", "Student already holds an order for this package")
)

// StoreOrder is the aggregate root for a school store purchase
type StoreOrder struct {
	shared.TenantAggregateRoot
	StudentID        uuid.UUID
	AcademicYearID   *uuid.UUID
	Source           OrderSource
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	TotalAmount      decimal.Decimal
	TaxAmount        decimal.Decimal
	DiscountAmount   decimal.Decimal
	FeeID            *uuid.UUID
	PackageID        *uuid.UUID
	Notes            string
	PaymentMethod    string
	PaymentReference string
	PaidAt           *time.Time
	FulfilledAt      *time.Time
	Lines            []OrderLine
}

// NewAdhocOrder builds an order from a free-form list of priced lines
func NewAdhocOrder(tenantID, studentID uuid.UUID, specs []LineSpec) (*StoreOrder, error) {
	order, err := newOrder(tenantID, studentID, OrderSourceAdhoc, specs, decimal.Zero)
	if err != nil {
		return nil, err
	}
	order.AddDomainEvent(NewStoreOrderCreatedEvent(order))
	return order, nil
}

// NewPackageOrder builds an order from a package's components. The package
// discount is carried as DiscountAmount so the total matches the package price.
func NewPackageOrder(tenantID, studentID uuid.UUID, pkg *catalog.Package) (*StoreOrder, error) {
	if pkg == nil {
		return nil, shared.InvalidInput("Package is required")
	}
	specs := make([]LineSpec, 0, len(pkg.Components))
	for _, c := range pkg.Components {
		specs = append(specs, LineSpec{
			ItemID:        c.ItemID,
			ItemName:      c.ItemName,
			Quantity:      c.Quantity,
			UnitPrice:     c.UnitPrice,
			TaxPercentage: c.TaxPercentage,
		})
	}
	order, err := newOrder(tenantID, studentID, OrderSourcePackage, specs, pkg.DiscountAmount())
	if err != nil {
		return nil, err
	}
	pkgID := pkg.ID
	yearID := pkg.AcademicYearID
	order.PackageID = &pkgID
	order.AcademicYearID = &yearID
	order.AddDomainEvent(NewStoreOrderCreatedEvent(order))
	return order, nil
}

func newOrder(tenantID, studentID uuid.UUID, source OrderSource, specs []LineSpec, discount decimal.Decimal) (*StoreOrder, error) {
	if studentID == uuid.Nil {
		return nil, shared.InvalidInput("Student is required")
	}
	if len(specs) == 0 {
		return nil, shared.InvalidInput("Order must contain at least one line")
	}

	order := &StoreOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StudentID:           studentID,
		Source:              source,
		Status:              OrderStatusPending,
		PaymentStatus:       PaymentStatusUnpaid,
		DiscountAmount:      discount,
		Lines:               make([]OrderLine, 0, len(specs)),
	}

	now := time.Now()
	for _, spec := range specs {
		if spec.ItemID == uuid.Nil {
			return nil, shared.InvalidInput("Order line item is required")
		}
		if spec.Quantity <= 0 {
			return nil, shared.InvalidInput("Order line quantity must be positive")
		}
		if spec.UnitPrice.IsNegative() {
			return nil, shared.InvalidInput("Order line price cannot be negative")
		}
		line := OrderLine{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ItemID:        spec.ItemID,
			ItemName:      spec.ItemName,
			Quantity:      spec.Quantity,
			UnitPrice:     spec.UnitPrice,
			TaxPercentage: spec.TaxPercentage,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		line.LineTax = catalog.TaxOn(line.LineTotal(), spec.TaxPercentage)
		order.Lines = append(order.Lines, line)
	}

	order.computeTotals()
	if order.TotalAmount.IsNegative() {
		return nil, shared.InvalidInput("Discount cannot exceed the order amount")
	}
	return order, nil
}

// computeTotals runs once, at build time
func (o *StoreOrder) computeTotals() {
	total := decimal.Zero
	tax := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].GrossTotal())
		tax = tax.Add(o.Lines[i].LineTax)
	}
	o.TaxAmount = tax
	o.TotalAmount = total.Sub(o.DiscountAmount)
}

// SetAcademicYear records the academic year the order belongs to
func (o *StoreOrder) SetAcademicYear(yearID *uuid.UUID) {
	o.AcademicYearID = yearID
}

// SetNotes sets free-form notes
func (o *StoreOrder) SetNotes(notes string) {
	o.Notes = notes
}

// LinkFee attaches the deferred-payment fee. An order owns at most one fee.
func (o *StoreOrder) LinkFee(feeID uuid.UUID) error {
	if o.FeeID != nil && *o.FeeID != feeID {
		return shared.NewDomainError("INVALID_STATE", "Order is already linked to a fee")
	}
	if o.IsPaid() {
		return shared.NewDomainError("INVALID_STATE", "Cannot link a fee to a paid order")
	}
	o.FeeID = &feeID
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid moves the order from UNPAID to PAID
func (o *StoreOrder) MarkPaid(method, reference string) error {
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusPaid) {
		return shared.ErrAlreadySettled
	}
	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentMethod = method
	o.PaymentReference = reference
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewStoreOrderSettledEvent(o))
	return nil
}

// ApplyDeduction records the settlement outcome for one line
func (o *StoreOrder) ApplyDeduction(lineID uuid.UUID, fulfillable, shortfall int) error {
	line := o.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("NOT_FOUND", "Order line not found")
	}
	if fulfillable < 0 || shortfall < 0 || fulfillable+shortfall != line.Quantity {
		return shared.InvalidInput("Deduction does not match the line quantity")
	}
	line.applyDeduction(fulfillable, shortfall)
	if line.Backordered {
		o.AddDomainEvent(NewOrderLineBackorderedEvent(o, line))
	}
	return nil
}

// Fulfill stamps every line as issued and rolls up the order status.
// Calling it again re-stamps the lines.
func (o *StoreOrder) Fulfill(issuer uuid.UUID) error {
	if !o.IsPaid() {
		return shared.ErrNotPaid
	}
	now := time.Now()
	for i := range o.Lines {
		o.Lines[i].stampIssued(issuer, now)
	}
	if o.HasBackorders() {
		o.Status = OrderStatusPartiallyFulfilled
	} else {
		o.Status = OrderStatusFulfilled
	}
	o.FulfilledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewStoreOrderFulfilledEvent(o, issuer))
	return nil
}

// GetLine returns a pointer to the line with the given id
func (o *StoreOrder) GetLine(lineID uuid.UUID) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// HasBackorders reports whether any line is backordered
func (o *StoreOrder) HasBackorders() bool {
	for i := range o.Lines {
		if o.Lines[i].Backordered {
			return true
		}
	}
	return false
}

// IsPaid reports whether payment has been settled
func (o *StoreOrder) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// HasFee reports whether the order defers payment to a fee
func (o *StoreOrder) HasFee() bool {
	return o.FeeID != nil
}

// TotalQuantity returns the demanded units across all lines
func (o *StoreOrder) TotalQuantity() int {
	total := 0
	for i := range o.Lines {
		total += o.Lines[i].Quantity
	}
	return total
}

// BackorderedQuantity returns the shortfall units across all lines
func (o *StoreOrder) BackorderedQuantity() int {
	total := 0
	for i := range o.Lines {
		total += o.Lines[i].ShortfallQuantity
	}
	return total
}
