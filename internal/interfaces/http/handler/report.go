package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	storeapp "github.com/schoolstore/backend/internal/application/store"
)

// SummaryService produces the sales summary
type SummaryService interface {
	GetSummary(ctx context.Context, tenantID uuid.UUID, req storeapp.SummaryRequest) (*storeapp.SalesSummaryResponse, error)
}

// ReportHandler serves store reports
type ReportHandler struct {
	BaseHandler
	summary SummaryService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(summary SummaryService) *ReportHandler {
	return &ReportHandler{summary: summary}
}

// SalesSummary godoc
// @ID           getStoreSalesSummary
// @Summary      Store sales summary
// @Description  Order counts, revenue, tax, units sold, backorders and top items for the
// @Description  optional date range and academic year. Results may come from cache.
// @Tags         store-reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        academic_year_id query string false "Academic year"
// @Param        top_items query int false "Number of top items (default 5, max 50)"
// @Success      200 {object} APIResponse[storeapp.SalesSummaryResponse]
// @Router       /store/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req storeapp.SummaryRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		h.BadRequest(c, "to must not be before from")
		return
	}

	summary, err := h.summary.GetSummary(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
