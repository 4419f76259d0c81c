package store

// OrderSource tells how an order was built
type OrderSource string

const (
	OrderSourceAdhoc   OrderSource = "ADHOC"
	OrderSourcePackage OrderSource = "PACKAGE"
)

// IsValid reports whether the source is known
func (s OrderSource) IsValid() bool {
	return s == OrderSourceAdhoc || s == OrderSourcePackage
}

// OrderStatus is the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "PENDING"
	OrderStatusFulfilled          OrderStatus = "FULFILLED"
	OrderStatusPartiallyFulfilled OrderStatus = "PARTIALLY_FULFILLED"
)

// IsValid reports whether the status is known
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusFulfilled, OrderStatusPartiallyFulfilled:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentStatus is the payment state of an order. It only moves UNPAID -> PAID.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// IsValid reports whether the payment status is known
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

// CanTransitionTo checks the one-way payment transition
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	return s == PaymentStatusUnpaid && target == PaymentStatusPaid
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// ActivePaymentStatuses are the statuses that count as an existing assignment
func ActivePaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusUnpaid, PaymentStatusPaid}
}
