package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerBridge implements finance.LedgerBridge over the ledger tables
type GormLedgerBridge struct {
	db *gorm.DB
}

// NewGormLedgerBridge creates a new GormLedgerBridge
func NewGormLedgerBridge(db *gorm.DB) *GormLedgerBridge {
	return &GormLedgerBridge{db: db}
}

// FindOrCreateCategory returns the named category, creating it on first use.
// A concurrent creator loses the insert to the unique (tenant, name) index and
// reads the winner's row instead.
func (b *GormLedgerBridge) FindOrCreateCategory(ctx context.Context, tenantID uuid.UUID, name string, typ finance.LedgerEntryType) (*finance.LedgerCategory, error) {
	db := b.db.WithContext(ctx)
	var model models.LedgerCategoryModel
	err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category, err := finance.NewLedgerCategory(tenantID, name, typ)
	if err != nil {
		return nil, err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.LedgerCategoryModelFromDomain(category)).Error; err != nil {
		return nil, err
	}
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveFinancialPeriod returns the active period with the latest start date
func (b *GormLedgerBridge) FindActiveFinancialPeriod(ctx context.Context, tenantID uuid.UUID) (*finance.FinancialPeriod, error) {
	var model models.FinancialPeriodModel
	if err := b.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("start_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// PostTransaction persists a ledger row
func (b *GormLedgerBridge) PostTransaction(ctx context.Context, txn *finance.LedgerTransaction) error {
	return b.db.WithContext(ctx).Create(models.LedgerTransactionModelFromDomain(txn)).Error
}

// FindByReference returns the row posted for a source document
func (b *GormLedgerBridge) FindByReference(ctx context.Context, tenantID uuid.UUID, referenceType string, referenceID uuid.UUID) (*finance.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := b.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_type = ? AND reference_id = ?", tenantID, referenceType, referenceID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ finance.LedgerBridge = (*GormLedgerBridge)(nil)
