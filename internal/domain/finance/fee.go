package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeFee is the aggregate type for fee events
const AggregateTypeFee = "Fee"

// FeeCategory groups fees for reporting
type FeeCategory string

const (
	FeeCategoryTuition   FeeCategory = "TUITION"
	FeeCategoryStore     FeeCategory = "STORE"
	FeeCategoryTransport FeeCategory = "TRANSPORT"
	FeeCategoryOther     FeeCategory = "OTHER"
)

// IsValid checks if the category is known
func (c FeeCategory) IsValid() bool {
	switch c {
	case FeeCategoryTuition, FeeCategoryStore, FeeCategoryTransport, FeeCategoryOther:
		return true
	}
	return false
}

// FeeStatus represents the payment state of a fee
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "PENDING"
	FeeStatusPaid    FeeStatus = "PAID"
)

// IsValid checks if the status is known
func (s FeeStatus) IsValid() bool {
	return s == FeeStatusPending || s == FeeStatusPaid
}

// String returns the string representation of FeeStatus
func (s FeeStatus) String() string {
	return string(s)
}

// PaymentMethod is how a payment was tendered
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodMobileMoney, PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// ParsePaymentMethod normalizes user input. Empty input means cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return PaymentMethodCash, nil
	}
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", shared.InvalidInput("Unsupported payment method: "+s)
	}
	return m, nil
}

// Fee source types
const (
	FeeSourceStoreOrder = "STORE_ORDER"
)

// Fee is a charge billed to a student and settled later
type Fee struct {
	shared.TenantAggregateRoot
	StudentID      uuid.UUID
	AcademicYearID uuid.UUID
	Category       FeeCategory
	Description    string
	Amount         decimal.Decimal
	Balance        decimal.Decimal
	DueDate        time.Time
	Status         FeeStatus
	PaidAt         *time.Time
	SourceType     string
	SourceID       *uuid.UUID
}

// NewStoreFee creates a PENDING store fee for the full amount
func NewStoreFee(tenantID, studentID, academicYearID uuid.UUID, amount decimal.Decimal, dueDate time.Time, description string) (*Fee, error) {
	if studentID == uuid.Nil {
		return nil, shared.InvalidInput("Fee student is required")
	}
	if academicYearID == uuid.Nil {
		return nil, shared.InvalidInput("Fee academic year is required")
	}
	if amount.IsNegative() {
		return nil, shared.InvalidInput("Fee amount cannot be negative")
	}

	fee := &Fee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StudentID:           studentID,
		AcademicYearID:      academicYearID,
		Category:            FeeCategoryStore,
		Description:         description,
		Amount:              amount,
		Balance:             amount,
		DueDate:             dueDate,
		Status:              FeeStatusPending,
	}
	return fee, nil
}

// LinkSource records the document that raised the fee
func (f *Fee) LinkSource(sourceType string, sourceID uuid.UUID) {
	f.SourceType = sourceType
	f.SourceID = &sourceID
}

// IsPaid reports whether the fee is settled
func (f *Fee) IsPaid() bool {
	return f.Status == FeeStatusPaid
}

// Pay settles the outstanding balance in full and returns the payment record
func (f *Fee) Pay(method PaymentMethod, reference string, at time.Time) (*FeePayment, error) {
	if f.IsPaid() {
		return nil, shared.ErrAlreadySettled
	}
	payment := &FeePayment{
		ID:        uuid.New(),
		TenantID:  f.TenantID,
		FeeID:     f.ID,
		Amount:    f.Balance,
		Method:    method,
		Reference: reference,
		PaidAt:    at,
	}
	f.Balance = decimal.Zero
	f.Status = FeeStatusPaid
	f.PaidAt = &at
	f.UpdatedAt = at
	f.IncrementVersion()
	return payment, nil
}

// FeePayment is a payment recorded against a fee
type FeePayment struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	FeeID     uuid.UUID
	Amount    decimal.Decimal
	Method    PaymentMethod
	Reference string
	PaidAt    time.Time
}
