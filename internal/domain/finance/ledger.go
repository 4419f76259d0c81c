package finance

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerEntryType is the direction of a ledger category or transaction
type LedgerEntryType string

const (
	LedgerEntryIncome  LedgerEntryType = "INCOME"
	LedgerEntryExpense LedgerEntryType = "EXPENSE"
)

// IsValid checks if the entry type is known
func (t LedgerEntryType) IsValid() bool {
	return t == LedgerEntryIncome || t == LedgerEntryExpense
}

// LedgerTransactionStatus is the state of a ledger row
type LedgerTransactionStatus string

const (
	LedgerTransactionCompleted LedgerTransactionStatus = "COMPLETED"
	LedgerTransactionVoided    LedgerTransactionStatus = "VOIDED"
)

// Ledger reference types
const (
	ReferenceTypeStoreOrder = "STORE_ORDER"
)

// LedgerCategory classifies ledger transactions
type LedgerCategory struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Type      LedgerEntryType
	CreatedAt time.Time
}

// NewLedgerCategory creates a category
func NewLedgerCategory(tenantID uuid.UUID, name string, typ LedgerEntryType) (*LedgerCategory, error) {
	if name == "" {
		return nil, shared.InvalidInput("Category name cannot be empty")
	}
	if !typ.IsValid() {
		return nil, shared.InvalidInput("Invalid ledger entry type")
	}
	return &LedgerCategory{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Type:      typ,
		CreatedAt: time.Now(),
	}, nil
}

// FinancialPeriod is an accounting window that ledger rows are booked into
type FinancialPeriod struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// NewFinancialPeriod creates an active period
func NewFinancialPeriod(tenantID uuid.UUID, name string, start, end time.Time) (*FinancialPeriod, error) {
	if name == "" {
		return nil, shared.InvalidInput("Period name cannot be empty")
	}
	if end.Before(start) {
		return nil, shared.InvalidInput("Period end must not precede its start")
	}
	return &FinancialPeriod{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
	}, nil
}

// Contains reports whether t falls inside the period
func (p *FinancialPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// LedgerTransaction is one posted row in the general ledger
type LedgerTransaction struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	TransactionNumber string
	CategoryID        uuid.UUID
	FinancialPeriodID uuid.UUID
	Type              LedgerEntryType
	Amount            decimal.Decimal
	Status            LedgerTransactionStatus
	ReferenceType     string
	ReferenceID       uuid.UUID
	PaymentMethod     PaymentMethod
	PaymentReference  string
	Description       string
	TransactionDate   time.Time
	CreatedBy         *uuid.UUID
	CreatedAt         time.Time
}

// SaleEntry is the input for an income posting
type SaleEntry struct {
	TenantID          uuid.UUID
	TransactionNumber string
	Category          *LedgerCategory
	Period            *FinancialPeriod
	Amount            decimal.Decimal
	ReferenceType     string
	ReferenceID       uuid.UUID
	PaymentMethod     PaymentMethod
	PaymentReference  string
	Description       string
	PostedBy          *uuid.UUID
	TransactionDate   time.Time
}

// NewIncomeTransaction builds a COMPLETED INCOME row
func NewIncomeTransaction(e SaleEntry) (*LedgerTransaction, error) {
	if e.Category == nil || e.Period == nil {
		return nil, shared.InvalidInput("Category and financial period are required")
	}
	if e.Amount.IsNegative() {
		return nil, shared.InvalidInput("Transaction amount cannot be negative")
	}
	if e.TransactionNumber == "" {
		return nil, shared.InvalidInput("Transaction number is required")
	}
	return &LedgerTransaction{
		ID:                uuid.New(),
		TenantID:          e.TenantID,
		TransactionNumber: e.TransactionNumber,
		CategoryID:        e.Category.ID,
		FinancialPeriodID: e.Period.ID,
		Type:              LedgerEntryIncome,
		Amount:            e.Amount,
		Status:            LedgerTransactionCompleted,
		ReferenceType:     e.ReferenceType,
		ReferenceID:       e.ReferenceID,
		PaymentMethod:     e.PaymentMethod,
		PaymentReference:  e.PaymentReference,
		Description:       e.Description,
		TransactionDate:   e.TransactionDate,
		CreatedBy:         e.PostedBy,
		CreatedAt:         time.Now(),
	}, nil
}

// GenerateTransactionNumber returns <prefix>-<yyyymmddHHMMSS>-<6 hex>.
// Uniqueness is probabilistic: two postings in the same second collide with
// probability 1/16^6.
func GenerateTransactionNumber(prefix string, now time.Time, random io.Reader) string {
	if random == nil {
		random = rand.Reader
	}
	buf := make([]byte, 3)
	if _, err := io.ReadFull(random, buf); err != nil {
		// fall back to the clock's nanoseconds
		n := now.Nanosecond()
		buf = []byte{byte(n >> 16), byte(n >> 8), byte(n)}
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102150405"), hex.EncodeToString(buf))
}
