package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line of an ad-hoc order
type OrderLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CreateAdhocOrderRequest represents a request to build an ad-hoc order.
// With GenerateFee and an academic year the order is billed as a fee;
// otherwise it is settled immediately.
type CreateAdhocOrderRequest struct {
	StudentID        uuid.UUID          `json:"student_id" binding:"required"`
	AcademicYearID   *uuid.UUID         `json:"academic_year_id"`
	Lines            []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	GenerateFee      bool               `json:"generate_fee"`
	PaymentMethod    string             `json:"payment_method" binding:"omitempty,payment_method"`
	PaymentReference string             `json:"payment_reference" binding:"max=100"`
	Notes            string             `json:"notes" binding:"max=1000"`
	CreatedBy        *uuid.UUID         `json:"-"`
}

// SettleRequest represents a request to mark an order paid
type SettleRequest struct {
	PaymentMethod string     `json:"payment_method" binding:"omitempty,payment_method"`
	Reference     string     `json:"reference" binding:"max=100"`
	SettledBy     *uuid.UUID `json:"-"`
}

// FulfillRequest represents a request to issue an order's items
type FulfillRequest struct {
	IssuedBy uuid.UUID `json:"-"`
}

// AssignPackageRequest represents a bulk assignment of a package to a grade
type AssignPackageRequest struct {
	Grade        string      `json:"grade" binding:"max=50"`
	ClassroomIDs []uuid.UUID `json:"classroom_ids"`
	CreatedBy    *uuid.UUID  `json:"-"`
}

// OrderListFilter represents filter options for listing orders
type OrderListFilter struct {
	StudentID      *uuid.UUID `form:"student_id"`
	PackageID      *uuid.UUID `form:"package_id"`
	AcademicYearID *uuid.UUID `form:"academic_year_id"`
	Status         string     `form:"status" binding:"omitempty,oneof=PENDING FULFILLED PARTIALLY_FULFILLED"`
	PaymentStatus  string     `form:"payment_status" binding:"omitempty,oneof=UNPAID PAID"`
	Source         string     `form:"source" binding:"omitempty,oneof=ADHOC PACKAGE"`
	StartDate      *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate        *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page           int        `form:"page" binding:"min=0"`
	PageSize       int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SummaryRequest scopes a sales summary
type SummaryRequest struct {
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"`
	AcademicYearID *uuid.UUID `form:"academic_year_id"`
	TopItems       int        `form:"top_items" binding:"min=0,max=50"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TaxPercentage     decimal.Decimal `json:"tax_percentage"`
	LineTotal         decimal.Decimal `json:"line_total"`
	LineTax           decimal.Decimal `json:"line_tax"`
	FulfilledQuantity int             `json:"fulfilled_quantity"`
	Issued            bool            `json:"issued"`
	IssuedAt          *time.Time      `json:"issued_at,omitempty"`
	IssuedBy          *uuid.UUID      `json:"issued_by,omitempty"`
	Backordered       bool            `json:"backordered"`
	ShortfallQuantity int             `json:"shortfall_quantity"`
	BackorderNote     string          `json:"backorder_note,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	TenantID         uuid.UUID           `json:"tenant_id"`
	StudentID        uuid.UUID           `json:"student_id"`
	AcademicYearID   *uuid.UUID          `json:"academic_year_id,omitempty"`
	Source           string              `json:"source"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	TaxAmount        decimal.Decimal     `json:"tax_amount"`
	DiscountAmount   decimal.Decimal     `json:"discount_amount"`
	FeeID            *uuid.UUID          `json:"fee_id,omitempty"`
	PackageID        *uuid.UUID          `json:"package_id,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	FulfilledAt      *time.Time          `json:"fulfilled_at,omitempty"`
	Lines            []OrderLineResponse `json:"lines"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderListItemResponse is the list view of an order
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	StudentID     uuid.UUID       `json:"student_id"`
	Source        string          `json:"source"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LineCount     int             `json:"line_count"`
	HasBackorders bool            `json:"has_backorders"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PostingResponse reports what happened in the ledger
type PostingResponse struct {
	LedgerPosted      bool   `json:"ledger_posted"`
	TransactionNumber string `json:"transaction_number,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// SettlementResponse is the outcome of a settlement
type SettlementResponse struct {
	Order   OrderResponse   `json:"order"`
	Posting PostingResponse `json:"posting"`
}

// CreateOrderResponse is the outcome of building an ad-hoc order. Posting is
// present when the order was settled on creation.
type CreateOrderResponse struct {
	Order   OrderResponse    `json:"order"`
	Posting *PostingResponse `json:"posting,omitempty"`
}

// AssignmentFailure describes one student the bulk run could not process
type AssignmentFailure struct {
	StudentID uuid.UUID `json:"student_id"`
	Reason    string    `json:"reason"`
}

// AssignmentResult is the aggregate outcome of a bulk assignment
type AssignmentResult struct {
	PackageID uuid.UUID           `json:"package_id"`
	Created   int                 `json:"created"`
	Skipped   int                 `json:"skipped"`
	Failed    int                 `json:"failed"`
	Total     int                 `json:"total"`
	Failures  []AssignmentFailure `json:"failures,omitempty"`
}

// ItemSalesResponse is one row of the top items table
type ItemSalesResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesSummaryResponse represents the sales summary report
type SalesSummaryResponse struct {
	TotalOrders        int64               `json:"total_orders"`
	PaidOrders         int64               `json:"paid_orders"`
	UnpaidOrders       int64               `json:"unpaid_orders"`
	FulfilledOrders    int64               `json:"fulfilled_orders"`
	PartiallyFulfilled int64               `json:"partially_fulfilled_orders"`
	GrossRevenue       decimal.Decimal     `json:"gross_revenue"`
	TaxCollected       decimal.Decimal     `json:"tax_collected"`
	OutstandingAmount  decimal.Decimal     `json:"outstanding_amount"`
	UnitsSold          int64               `json:"units_sold"`
	BackorderedLines   int64               `json:"backordered_lines"`
	BackorderedUnits   int64               `json:"backordered_units"`
	TopItems           []ItemSalesResponse `json:"top_items"`
	Cached             bool                `json:"cached"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *store.StoreOrder) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		lines[i] = OrderLineResponse{
			ID:                l.ID,
			ItemID:            l.ItemID,
			ItemName:          l.ItemName,
			Quantity:          l.Quantity,
			UnitPrice:         l.UnitPrice,
			TaxPercentage:     l.TaxPercentage,
			LineTotal:         l.LineTotal(),
			LineTax:           l.LineTax,
			FulfilledQuantity: l.FulfilledQuantity,
			Issued:            l.Issued,
			IssuedAt:          l.IssuedAt,
			IssuedBy:          l.IssuedBy,
			Backordered:       l.Backordered,
			ShortfallQuantity: l.ShortfallQuantity,
			BackorderNote:     l.BackorderNote,
		}
	}
	return OrderResponse{
		ID:               o.ID,
		TenantID:         o.TenantID,
		StudentID:        o.StudentID,
		AcademicYearID:   o.AcademicYearID,
		Source:           string(o.Source),
		Status:           o.Status.String(),
		PaymentStatus:    o.PaymentStatus.String(),
		TotalAmount:      o.TotalAmount,
		TaxAmount:        o.TaxAmount,
		DiscountAmount:   o.DiscountAmount,
		FeeID:            o.FeeID,
		PackageID:        o.PackageID,
		Notes:            o.Notes,
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		PaidAt:           o.PaidAt,
		FulfilledAt:      o.FulfilledAt,
		Lines:            lines,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToOrderListItemResponse converts a domain order to its list view
func ToOrderListItemResponse(o *store.StoreOrder) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            o.ID,
		StudentID:     o.StudentID,
		Source:        string(o.Source),
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		TotalAmount:   o.TotalAmount,
		LineCount:     len(o.Lines),
		HasBackorders: o.HasBackorders(),
		CreatedAt:     o.CreatedAt,
	}
}

// ToPostingResponse converts a posting result
func ToPostingResponse(r *PostingResult) PostingResponse {
	if r == nil {
		return PostingResponse{}
	}
	return PostingResponse{
		LedgerPosted:      r.Posted,
		TransactionNumber: r.TransactionNumber,
		Reason:            r.Reason,
	}
}

// ToSalesSummaryResponse converts a domain summary
func ToSalesSummaryResponse(s *store.SalesSummary, cached bool) SalesSummaryResponse {
	top := make([]ItemSalesResponse, len(s.TopItems))
	for i, it := range s.TopItems {
		top[i] = ItemSalesResponse{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
			Revenue:  it.Revenue,
		}
	}
	return SalesSummaryResponse{
		TotalOrders:        s.TotalOrders,
		PaidOrders:         s.PaidOrders,
		UnpaidOrders:       s.UnpaidOrders,
		FulfilledOrders:    s.FulfilledOrders,
		PartiallyFulfilled: s.PartiallyFulfilled,
		GrossRevenue:       s.GrossRevenue,
		TaxCollected:       s.TaxCollected,
		OutstandingAmount:  s.OutstandingAmount,
		UnitsSold:          s.UnitsSold,
		BackorderedLines:   s.BackorderedLines,
		BackorderedUnits:   s.BackorderedUnits,
		TopItems:           top,
		Cached:             cached,
	}
}
