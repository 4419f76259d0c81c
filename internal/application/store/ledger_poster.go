package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"go.uber.org/zap"
)

// Posting skip reasons
const (
	ReasonNoActivePeriod = "NO_ACTIVE_FINANCIAL_PERIOD"
	ReasonAlreadyPosted  = "ALREADY_POSTED"
)

// PostingResult is the ledger outcome of a settlement. A sale without an
// active financial period completes with Posted=false so it can be backfilled.
type PostingResult struct {
	Posted            bool
	TransactionNumber string
	TransactionID     uuid.UUID
	Reason            string
}

// LedgerPoster books store sales into the general ledger
type LedgerPoster struct {
	settings Settings
	logger   *zap.Logger
	metrics  Metrics
	random   io.Reader
	now      func() time.Time
}

// PosterOption configures a LedgerPoster
type PosterOption func(*LedgerPoster)

// WithClock sets the time source used for transaction numbers and dates
func WithClock(now func() time.Time) PosterOption {
	return func(p *LedgerPoster) {
		if now != nil {
			p.now = now
		}
	}
}

// WithEntropy sets the reader for the transaction number suffix.
// Defaults to crypto/rand.
func WithEntropy(random io.Reader) PosterOption {
	return func(p *LedgerPoster) {
		p.random = random
	}
}

// NewLedgerPoster creates a new LedgerPoster
func NewLedgerPoster(settings Settings, logger *zap.Logger, metrics Metrics, opts ...PosterOption) *LedgerPoster {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	p := &LedgerPoster{
		settings: settings.withDefaults(),
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PostSale posts one COMPLETED INCOME row for the order total. It must run
// inside the settlement transaction; ledger is the transaction-bound bridge.
func (p *LedgerPoster) PostSale(ctx context.Context, ledger finance.LedgerBridge, order *store.StoreOrder, postedBy *uuid.UUID) (*PostingResult, error) {
	category, err := ledger.FindOrCreateCategory(ctx, order.TenantID, p.settings.LedgerCategoryName, finance.LedgerEntryIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger category: %w", err)
	}

	period, err := ledger.FindActiveFinancialPeriod(ctx, order.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			p.logger.Warn("degraded posting: no active financial period, ledger entry skipped",
				zap.String("tenant_id", order.TenantID.String()),
				zap.String("order_id", order.ID.String()),
				zap.String("amount", order.TotalAmount.String()),
			)
			p.metrics.DegradedPosting(ctx)
			return &PostingResult{Posted: false, Reason: ReasonNoActivePeriod}, nil
		}
		return nil, fmt.Errorf("failed to resolve financial period: %w", err)
	}

	now := p.now()
	method, err := finance.ParsePaymentMethod(order.PaymentMethod)
	if err != nil {
		method = finance.PaymentMethodOther
	}
	txn, err := finance.NewIncomeTransaction(finance.SaleEntry{
		TenantID:          order.TenantID,
		TransactionNumber: finance.GenerateTransactionNumber(p.settings.TransactionPrefix, now, p.random),
		Category:          category,
		Period:            period,
		Amount:            order.TotalAmount,
		ReferenceType:     finance.ReferenceTypeStoreOrder,
		ReferenceID:       order.ID,
		PaymentMethod:     method,
		PaymentReference:  order.PaymentReference,
		Description:       fmt.Sprintf("Store sale %s", order.ID),
		PostedBy:          postedBy,
		TransactionDate:   now,
	})
	if err != nil {
		return nil, err
	}
	if err := ledger.PostTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to post ledger transaction: %w", err)
	}

	p.logger.Info("store sale posted",
		zap.String("tenant_id", order.TenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_number", txn.TransactionNumber),
		zap.String("amount", txn.Amount.String()),
	)
	return &PostingResult{Posted: true, TransactionNumber: txn.TransactionNumber, TransactionID: txn.ID}, nil
}
