// Package tenant scopes GORM queries to a single school tenant.
//
// Repositories receive the tenant explicitly on every call. When the request
// context also carries a tenant (set by the identity middleware), the two must
// agree; a mismatch fails the query instead of silently reading another
// tenant's rows.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

const defaultColumn = "tenant_id"

var (
	// ErrTenantIDRequired is returned when a query is scoped to the nil tenant
	ErrTenantIDRequired = errors.New("tenant_id is required")
	// ErrTenantMismatch is returned when the tenant argument differs from the request tenant
	ErrTenantMismatch = errors.New("tenant_id does not match the request tenant")
)

// Scope restricts a query to tenantID on the tenant_id column.
func Scope(ctx context.Context, tenantID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return ScopeColumn(ctx, defaultColumn, tenantID)
}

// ScopeColumn is Scope for a qualified or differently named column,
// e.g. "o.tenant_id" in joined report queries.
func ScopeColumn(ctx context.Context, column string, tenantID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if err := Check(ctx, tenantID); err != nil {
			_ = db.AddError(err)
			return db
		}
		return db.Where(column+" = ?", tenantID)
	}
}

// Check validates tenantID against the tenant carried by ctx, if any.
func Check(ctx context.Context, tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return ErrTenantIDRequired
	}
	requestTenant := logger.GetTenantID(ctx)
	if requestTenant != "" && requestTenant != tenantID.String() {
		return ErrTenantMismatch
	}
	return nil
}
