package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerPoster_PostSale_UsesClockAndEntropy(t *testing.T) {
	tenantID := uuid.New()
	postedAt := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	category, err := finance.NewLedgerCategory(tenantID, "Store Sales", finance.LedgerEntryIncome)
	require.NoError(t, err)
	period, err := finance.NewFinancialPeriod(tenantID, "2026", postedAt.AddDate(0, -1, 0), postedAt.AddDate(0, 11, 0))
	require.NoError(t, err)

	ledger := new(MockLedgerBridge)
	ledger.On("FindOrCreateCategory", mock.Anything, tenantID, "Store Sales", finance.LedgerEntryIncome).Return(category, nil)
	ledger.On("FindActiveFinancialPeriod", mock.Anything, tenantID).Return(period, nil)
	var posted *finance.LedgerTransaction
	ledger.On("PostTransaction", mock.Anything, mock.AnythingOfType("*finance.LedgerTransaction")).
		Run(func(args mock.Arguments) { posted = args.Get(1).(*finance.LedgerTransaction) }).
		Return(nil)

	poster := NewLedgerPoster(DefaultSettings(), nil, nil,
		WithClock(func() time.Time { return postedAt }),
		WithEntropy(bytes.NewReader([]byte{0x0a, 0xbc, 0x01})),
	)

	order, err := store.NewAdhocOrder(tenantID, uuid.New(), []store.LineSpec{line(100, 0, 2)})
	require.NoError(t, err)

	result, err := poster.PostSale(context.Background(), ledger, order, nil)
	require.NoError(t, err)
	assert.True(t, result.Posted)
	assert.Equal(t, "STS-20260901103000-0abc01", result.TransactionNumber)

	require.NotNil(t, posted)
	assert.Equal(t, result.TransactionNumber, posted.TransactionNumber)
	assert.True(t, posted.TransactionDate.Equal(postedAt))
	assert.True(t, posted.Amount.Equal(order.TotalAmount))
	ledger.AssertExpectations(t)
}

func TestLedgerPoster_DefaultsToCryptoEntropy(t *testing.T) {
	poster := NewLedgerPoster(DefaultSettings(), nil, nil)
	assert.Nil(t, poster.random)
	assert.NotNil(t, poster.now)

	n := finance.GenerateTransactionNumber("STS", time.Now(), poster.random)
	assert.Regexp(t, `^STS-\d{14}-[0-9a-f]{6}$`, n)
}
