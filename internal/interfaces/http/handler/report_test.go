package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	storeapp "github.com/schoolstore/backend/internal/application/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSummaryService struct{ mock.Mock }

func (m *mockSummaryService) GetSummary(ctx context.Context, tenantID uuid.UUID, req storeapp.SummaryRequest) (*storeapp.SalesSummaryResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeapp.SalesSummaryResponse), args.Error(1)
}

func TestReportHandler_SalesSummary(t *testing.T) {
	svc := new(mockSummaryService)
	h := NewReportHandler(svc)
	r := newTestRouter()
	r.GET("/store/reports/sales-summary", h.SalesSummary)
	tenantID := uuid.New()

	svc.On("GetSummary", mock.Anything, tenantID, mock.MatchedBy(func(req storeapp.SummaryRequest) bool {
		return req.From != nil && req.From.Format(time.DateOnly) == "2026-09-01" && req.TopItems == 3
	})).Return(&storeapp.SalesSummaryResponse{
		TotalOrders:  4,
		PaidOrders:   3,
		GrossRevenue: decimal.NewFromInt(660),
		Cached:       true,
	}, nil).Once()

	w, resp := doRequest(t, r, http.MethodGet, "/store/reports/sales-summary?from=2026-09-01&to=2026-09-30&top_items=3", tenantID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary storeapp.SalesSummaryResponse
	decodeData(t, resp, &summary)
	assert.Equal(t, int64(3), summary.PaidOrders)
	assert.True(t, summary.GrossRevenue.Equal(decimal.NewFromInt(660)))
	assert.True(t, summary.Cached)

	w, _ = doRequest(t, r, http.MethodGet, "/store/reports/sales-summary?from=2026-09-30&to=2026-09-01", tenantID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/store/reports/sales-summary?top_items=500", tenantID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("GetSummary", mock.Anything, tenantID, mock.Anything).Return(nil, errors.New("db down")).Once()
	w, _ = doRequest(t, r, http.MethodGet, "/store/reports/sales-summary", tenantID, nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	svc.AssertExpectations(t)
}
