package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FeeModel is the persistence model for finance.Fee
type FeeModel struct {
	TenantAggregateModel
	StudentID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	AcademicYearID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Category       finance.FeeCategory `gorm:"type:varchar(20);not null"`
	Description    string              `gorm:"type:varchar(500)"`
	Amount         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Balance        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	DueDate        time.Time           `gorm:"not null"`
	Status         finance.FeeStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaidAt         *time.Time
	SourceType     string     `gorm:"type:varchar(30)"`
	SourceID       *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (FeeModel) TableName() string {
	return "fees"
}

// ToDomain converts the model to a domain Fee
func (m *FeeModel) ToDomain() *finance.Fee {
	return &finance.Fee{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		StudentID:           m.StudentID,
		AcademicYearID:      m.AcademicYearID,
		Category:            m.Category,
		Description:         m.Description,
		Amount:              m.Amount,
		Balance:             m.Balance,
		DueDate:             m.DueDate,
		Status:              m.Status,
		PaidAt:              m.PaidAt,
		SourceType:          m.SourceType,
		SourceID:            m.SourceID,
	}
}

// FromDomain populates the model from a domain Fee
func (m *FeeModel) FromDomain(f *finance.Fee) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.StudentID = f.StudentID
	m.AcademicYearID = f.AcademicYearID
	m.Category = f.Category
	m.Description = f.Description
	m.Amount = f.Amount
	m.Balance = f.Balance
	m.DueDate = f.DueDate
	m.Status = f.Status
	m.PaidAt = f.PaidAt
	m.SourceType = f.SourceType
	m.SourceID = f.SourceID
}

// FeeModelFromDomain creates a model from a domain Fee
func FeeModelFromDomain(f *finance.Fee) *FeeModel {
	m := &FeeModel{}
	m.FromDomain(f)
	return m
}

// FeePaymentModel is one payment against a fee
type FeePaymentModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	FeeID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Method    finance.PaymentMethod `gorm:"type:varchar(30);not null"`
	Reference string                `gorm:"type:varchar(100)"`
	PaidAt    time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeePaymentModel) TableName() string {
	return "fee_payments"
}

// FeePaymentModelFromDomain creates a model from a domain FeePayment
func FeePaymentModelFromDomain(p *finance.FeePayment) *FeePaymentModel {
	return &FeePaymentModel{
		ID:        p.ID,
		TenantID:  p.TenantID,
		FeeID:     p.FeeID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

// ToDomain converts the model to a domain FeePayment
func (m *FeePaymentModel) ToDomain() *finance.FeePayment {
	return &finance.FeePayment{
		ID:        m.ID,
		TenantID:  m.TenantID,
		FeeID:     m.FeeID,
		Amount:    m.Amount,
		Method:    m.Method,
		Reference: m.Reference,
		PaidAt:    m.PaidAt,
	}
}

// LedgerCategoryModel is the persistence model for finance.LedgerCategory
type LedgerCategoryModel struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_category_tenant_name,priority:1"`
	Name      string                  `gorm:"type:varchar(100);not null;uniqueIndex:idx_ledger_category_tenant_name,priority:2"`
	Type      finance.LedgerEntryType `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerCategoryModel) TableName() string {
	return "ledger_categories"
}

// ToDomain converts the model to a domain LedgerCategory
func (m *LedgerCategoryModel) ToDomain() *finance.LedgerCategory {
	return &finance.LedgerCategory{ID: m.ID, TenantID: m.TenantID, Name: m.Name, Type: m.Type, CreatedAt: m.CreatedAt}
}

// LedgerCategoryModelFromDomain creates a model from a domain LedgerCategory
func LedgerCategoryModelFromDomain(c *finance.LedgerCategory) *LedgerCategoryModel {
	return &LedgerCategoryModel{ID: c.ID, TenantID: c.TenantID, Name: c.Name, Type: c.Type, CreatedAt: c.CreatedAt}
}

// FinancialPeriodModel is the persistence model for finance.FinancialPeriod
type FinancialPeriodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (FinancialPeriodModel) TableName() string {
	return "financial_periods"
}

// ToDomain converts the model to a domain FinancialPeriod
func (m *FinancialPeriodModel) ToDomain() *finance.FinancialPeriod {
	return &finance.FinancialPeriod{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		IsActive:  m.IsActive,
	}
}

// FinancialPeriodModelFromDomain creates a model from a domain FinancialPeriod
func FinancialPeriodModelFromDomain(p *finance.FinancialPeriod) *FinancialPeriodModel {
	return &FinancialPeriodModel{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsActive:  p.IsActive,
	}
}

// LedgerTransactionModel is the persistence model for finance.LedgerTransaction
type LedgerTransactionModel struct {
	ID                uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID                       `gorm:"type:uuid;not null;index"`
	TransactionNumber string                          `gorm:"type:varchar(50);not null;index"`
	CategoryID        uuid.UUID                       `gorm:"type:uuid;not null"`
	FinancialPeriodID uuid.UUID                       `gorm:"type:uuid;not null;index"`
	Type              finance.LedgerEntryType         `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal                 `gorm:"type:decimal(18,2);not null"`
	Status            finance.LedgerTransactionStatus `gorm:"type:varchar(20);not null"`
	ReferenceType     string                          `gorm:"type:varchar(30);index:idx_ledger_reference,priority:1"`
	ReferenceID       uuid.UUID                       `gorm:"type:uuid;index:idx_ledger_reference,priority:2"`
	PaymentMethod     finance.PaymentMethod           `gorm:"type:varchar(30)"`
	PaymentReference  string                          `gorm:"type:varchar(100)"`
	Description       string                          `gorm:"type:varchar(500)"`
	TransactionDate   time.Time                       `gorm:"not null"`
	CreatedBy         *uuid.UUID                      `gorm:"type:uuid"`
	CreatedAt         time.Time                       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the model to a domain LedgerTransaction
func (m *LedgerTransactionModel) ToDomain() *finance.LedgerTransaction {
	return &finance.LedgerTransaction{
		ID:                m.ID,
		TenantID:          m.TenantID,
		TransactionNumber: m.TransactionNumber,
		CategoryID:        m.CategoryID,
		FinancialPeriodID: m.FinancialPeriodID,
		Type:              m.Type,
		Amount:            m.Amount,
		Status:            m.Status,
		ReferenceType:     m.ReferenceType,
		ReferenceID:       m.ReferenceID,
		PaymentMethod:     m.PaymentMethod,
		PaymentReference:  m.PaymentReference,
		Description:       m.Description,
		TransactionDate:   m.TransactionDate,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
	}
}

// LedgerTransactionModelFromDomain creates a model from a domain LedgerTransaction
func LedgerTransactionModelFromDomain(t *finance.LedgerTransaction) *LedgerTransactionModel {
	return &LedgerTransactionModel{
		ID:                t.ID,
		TenantID:          t.TenantID,
		TransactionNumber: t.TransactionNumber,
		CategoryID:        t.CategoryID,
		FinancialPeriodID: t.FinancialPeriodID,
		Type:              t.Type,
		Amount:            t.Amount,
		Status:            t.Status,
		ReferenceType:     t.ReferenceType,
		ReferenceID:       t.ReferenceID,
		PaymentMethod:     t.PaymentMethod,
		PaymentReference:  t.PaymentReference,
		Description:       t.Description,
		TransactionDate:   t.TransactionDate,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
	}
}
