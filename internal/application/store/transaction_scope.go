package store

import (
	"context"

	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/store"
)

// TransactionScope runs a unit of work in one database transaction.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to every store collaborator bound to
// the same transaction
type TransactionalRepositories interface {
	OrderRepo() store.OrderRepository
	InventoryRepo() catalog.InventoryRepository
	FeeBridge() finance.FeeBridge
	LedgerBridge() finance.LedgerBridge
}

// NoOpTransactionScope runs fn directly against the given collaborators.
// Used in tests.
type NoOpTransactionScope struct {
	orderRepo     store.OrderRepository
	inventoryRepo catalog.InventoryRepository
	feeBridge     finance.FeeBridge
	ledgerBridge  finance.LedgerBridge
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo store.OrderRepository,
	inventoryRepo catalog.InventoryRepository,
	feeBridge finance.FeeBridge,
	ledgerBridge finance.LedgerBridge,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		feeBridge:     feeBridge,
		ledgerBridge:  ledgerBridge,
	}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) OrderRepo() store.OrderRepository           { return s.orderRepo }
func (s *NoOpTransactionScope) InventoryRepo() catalog.InventoryRepository { return s.inventoryRepo }
func (s *NoOpTransactionScope) FeeBridge() finance.FeeBridge               { return s.feeBridge }
func (s *NoOpTransactionScope) LedgerBridge() finance.LedgerBridge         { return s.ledgerBridge }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
