package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/shopspring/decimal"
)

// StoreOrderModel is the persistence model for store.StoreOrder
type StoreOrderModel struct {
	TenantAggregateModel
	StudentID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	AcademicYearID   *uuid.UUID          `gorm:"type:uuid;index"`
	Source           store.OrderSource   `gorm:"type:varchar(20);not null"`
	Status           store.OrderStatus   `gorm:"type:varchar(30);not null;default:'PENDING'"`
	PaymentStatus    store.PaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	TaxAmount        decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	FeeID            *uuid.UUID          `gorm:"type:uuid"`
	PackageID        *uuid.UUID          `gorm:"type:uuid;index"`
	Notes            string              `gorm:"type:text"`
	PaymentMethod    string              `gorm:"type:varchar(30)"`
	PaymentReference string              `gorm:"type:varchar(100)"`
	PaidAt           *time.Time
	FulfilledAt      *time.Time
	Lines            []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (StoreOrderModel) TableName() string {
	return "store_orders"
}

// ToDomain converts the model to a domain StoreOrder
func (m *StoreOrderModel) ToDomain() *store.StoreOrder {
	lines := make([]store.OrderLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = m.Lines[i].ToDomain()
	}
	return &store.StoreOrder{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		StudentID:           m.StudentID,
		AcademicYearID:      m.AcademicYearID,
		Source:              m.Source,
		Status:              m.Status,
		PaymentStatus:       m.PaymentStatus,
		TotalAmount:         m.TotalAmount,
		TaxAmount:           m.TaxAmount,
		DiscountAmount:      m.DiscountAmount,
		FeeID:               m.FeeID,
		PackageID:           m.PackageID,
		Notes:               m.Notes,
		PaymentMethod:       m.PaymentMethod,
		PaymentReference:    m.PaymentReference,
		PaidAt:              m.PaidAt,
		FulfilledAt:         m.FulfilledAt,
		Lines:               lines,
	}
}

// FromDomain populates the model from a domain StoreOrder
func (m *StoreOrderModel) FromDomain(o *store.StoreOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.StudentID = o.StudentID
	m.AcademicYearID = o.AcademicYearID
	m.Source = o.Source
	m.Status = o.Status
	m.PaymentStatus = o.PaymentStatus
	m.TotalAmount = o.TotalAmount
	m.TaxAmount = o.TaxAmount
	m.DiscountAmount = o.DiscountAmount
	m.FeeID = o.FeeID
	m.PackageID = o.PackageID
	m.Notes = o.Notes
	m.PaymentMethod = o.PaymentMethod
	m.PaymentReference = o.PaymentReference
	m.PaidAt = o.PaidAt
	m.FulfilledAt = o.FulfilledAt
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i].FromDomain(&o.Lines[i])
		m.Lines[i].OrderID = o.ID
	}
}

// StoreOrderModelFromDomain creates a model from a domain StoreOrder
func StoreOrderModelFromDomain(o *store.StoreOrder) *StoreOrderModel {
	m := &StoreOrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for store.OrderLine
type OrderLineModel struct {
	BaseModel
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName          string          `gorm:"type:varchar(200);not null"`
	Quantity          int             `gorm:"not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	LineTax           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FulfilledQuantity int             `gorm:"not null;default:0"`
	Issued            bool            `gorm:"not null;default:false"`
	IssuedAt          *time.Time
	IssuedBy          *uuid.UUID `gorm:"type:uuid"`
	Backordered       bool       `gorm:"not null;default:false"`
	ShortfallQuantity int        `gorm:"not null;default:0"`
	BackorderNote     string     `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "store_order_lines"
}

// ToDomain converts the model to a domain OrderLine
func (m *OrderLineModel) ToDomain() store.OrderLine {
	return store.OrderLine{
		ID:                m.ID,
		OrderID:           m.OrderID,
		ItemID:            m.ItemID,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		TaxPercentage:     m.TaxPercentage,
		LineTax:           m.LineTax,
		FulfilledQuantity: m.FulfilledQuantity,
		Issued:            m.Issued,
		IssuedAt:          m.IssuedAt,
		IssuedBy:          m.IssuedBy,
		Backordered:       m.Backordered,
		ShortfallQuantity: m.ShortfallQuantity,
		BackorderNote:     m.BackorderNote,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the model from a domain OrderLine
func (m *OrderLineModel) FromDomain(l *store.OrderLine) {
	m.ID = l.ID
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
	m.OrderID = l.OrderID
	m.ItemID = l.ItemID
	m.ItemName = l.ItemName
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.TaxPercentage = l.TaxPercentage
	m.LineTax = l.LineTax
	m.FulfilledQuantity = l.FulfilledQuantity
	m.Issued = l.Issued
	m.IssuedAt = l.IssuedAt
	m.IssuedBy = l.IssuedBy
	m.Backordered = l.Backordered
	m.ShortfallQuantity = l.ShortfallQuantity
	m.BackorderNote = l.BackorderNote
}
