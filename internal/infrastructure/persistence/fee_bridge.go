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

// GormFeeBridge implements finance.FeeBridge over the fees tables
type GormFeeBridge struct {
	db *gorm.DB
}

// NewGormFeeBridge creates a new GormFeeBridge
func NewGormFeeBridge(db *gorm.DB) *GormFeeBridge {
	return &GormFeeBridge{db: db}
}

// CreateFee persists a new fee
func (b *GormFeeBridge) CreateFee(ctx context.Context, fee *finance.Fee) error {
	return b.db.WithContext(ctx).Create(models.FeeModelFromDomain(fee)).Error
}

// FindFeeForUpdate loads and locks a fee
func (b *GormFeeBridge) FindFeeForUpdate(ctx context.Context, tenantID, feeID uuid.UUID) (*finance.Fee, error) {
	var model models.FeeModel
	if err := b.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, feeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MarkFeePaid writes the settled state of a fee
func (b *GormFeeBridge) MarkFeePaid(ctx context.Context, fee *finance.Fee) error {
	result := b.db.WithContext(ctx).
		Model(&models.FeeModel{}).
		Where("tenant_id = ? AND id = ?", fee.TenantID, fee.ID).
		Updates(map[string]interface{}{
			"balance":    fee.Balance,
			"status":     fee.Status,
			"paid_at":    fee.PaidAt,
			"updated_at": fee.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RecordFeePayment appends a payment row
func (b *GormFeeBridge) RecordFeePayment(ctx context.Context, payment *finance.FeePayment) error {
	return b.db.WithContext(ctx).Create(models.FeePaymentModelFromDomain(payment)).Error
}

var _ finance.FeeBridge = (*GormFeeBridge)(nil)
