package finance

import (
	"context"

	"github.com/google/uuid"
)

// FeeBridge is the store's view of the fee subsystem. Implementations join
// the caller's transaction.
type FeeBridge interface {
	// CreateFee persists a new fee
	CreateFee(ctx context.Context, fee *Fee) error

	// FindFeeForUpdate loads a fee and locks it for the current transaction
	FindFeeForUpdate(ctx context.Context, tenantID, feeID uuid.UUID) (*Fee, error)

	// MarkFeePaid persists the PAID state of a fee
	MarkFeePaid(ctx context.Context, fee *Fee) error

	// RecordFeePayment appends a payment row
	RecordFeePayment(ctx context.Context, payment *FeePayment) error
}

// LedgerBridge is the store's view of the general ledger
type LedgerBridge interface {
	// FindOrCreateCategory returns the named category, creating it if missing
	FindOrCreateCategory(ctx context.Context, tenantID uuid.UUID, name string, typ LedgerEntryType) (*LedgerCategory, error)

	// FindActiveFinancialPeriod returns the active period with the latest start
	// date, or shared.ErrNotFound when the tenant has none
	FindActiveFinancialPeriod(ctx context.Context, tenantID uuid.UUID) (*FinancialPeriod, error)

	// PostTransaction persists a ledger row
	PostTransaction(ctx context.Context, txn *LedgerTransaction) error

	// FindByReference returns the row posted for a source document, or
	// shared.ErrNotFound
	FindByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceID uuid.UUID) (*LedgerTransaction, error)
}
