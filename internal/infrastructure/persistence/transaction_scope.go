package persistence

import (
	"context"

	appstore "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/store"
	"gorm.io/gorm"
)

// GormStoreTransactionScope implements appstore.TransactionScope with a GORM
// transaction. Every repository handed to fn shares that transaction.
type GormStoreTransactionScope struct {
	db *gorm.DB
}

// NewGormStoreTransactionScope creates a new GormStoreTransactionScope
func NewGormStoreTransactionScope(db *gorm.DB) *GormStoreTransactionScope {
	return &GormStoreTransactionScope{db: db}
}

// Execute runs fn in a transaction, rolling back when it returns an error
func (s *GormStoreTransactionScope) Execute(ctx context.Context, fn func(repos appstore.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStoreRepositories{tx: tx})
	})
}

type gormStoreRepositories struct {
	tx *gorm.DB
}

func (r *gormStoreRepositories) OrderRepo() store.OrderRepository {
	return NewGormStoreOrderRepository(r.tx)
}

func (r *gormStoreRepositories) InventoryRepo() catalog.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormStoreRepositories) FeeBridge() finance.FeeBridge {
	return NewGormFeeBridge(r.tx)
}

func (r *gormStoreRepositories) LedgerBridge() finance.LedgerBridge {
	return NewGormLedgerBridge(r.tx)
}

var _ appstore.TransactionScope = (*GormStoreTransactionScope)(nil)
