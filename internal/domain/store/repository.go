package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
)

// OrderRepository defines persistence for store orders
type OrderRepository interface {
	// FindByIDForTenant finds an order with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StoreOrder, error)

	// FindByIDForUpdate finds an order and locks its row until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*StoreOrder, error)

	// FindAllForTenant lists orders (filters: student_id, package_id, status,
	// payment_status, source, academic_year_id, start_date, end_date)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StoreOrder, error)

	// CountForTenant counts orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsActiveAssignment reports whether an UNPAID or PAID order exists for
	// the (student, package, academic year) triple
	ExistsActiveAssignment(ctx context.Context, tenantID, studentID, packageID, academicYearID uuid.UUID) (bool, error)

	// Save creates or updates an order and its lines
	Save(ctx context.Context, order *StoreOrder) error

	// Summarize aggregates order figures for reporting
	Summarize(ctx context.Context, tenantID uuid.UUID, filter SummaryFilter) (*SalesSummary, error)
}

// SummaryFilter scopes a sales summary
type SummaryFilter struct {
	From           *time.Time
	To             *time.Time
	AcademicYearID *uuid.UUID
	TopItems       int
}
