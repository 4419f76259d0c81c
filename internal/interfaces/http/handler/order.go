package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	storeapp "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/interfaces/http/dto"
	"github.com/schoolstore/backend/internal/interfaces/http/middleware"
)

// OrderService builds and reads store orders
type OrderService interface {
	CreateAdhocOrder(ctx context.Context, tenantID uuid.UUID, req storeapp.CreateAdhocOrderRequest) (*storeapp.CreateOrderResponse, error)
	GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*storeapp.OrderResponse, error)
	ListOrders(ctx context.Context, tenantID uuid.UUID, filter storeapp.OrderListFilter) ([]storeapp.OrderListItemResponse, int64, error)
}

// SettlementService marks orders paid and repairs missed ledger postings
type SettlementService interface {
	Settle(ctx context.Context, tenantID, orderID uuid.UUID, req storeapp.SettleRequest) (*storeapp.SettlementResponse, error)
	BackfillLedger(ctx context.Context, tenantID, orderID uuid.UUID, postedBy *uuid.UUID) (*storeapp.PostingResponse, error)
}

// FulfillmentService records issuance of an order's items
type FulfillmentService interface {
	Fulfill(ctx context.Context, tenantID, orderID uuid.UUID, req storeapp.FulfillRequest) (*storeapp.OrderResponse, error)
}

// OrderHandler handles store order endpoints
type OrderHandler struct {
	BaseHandler
	orders      OrderService
	settlement  SettlementService
	fulfillment FulfillmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService, settlement SettlementService, fulfillment FulfillmentService) *OrderHandler {
	return &OrderHandler{orders: orders, settlement: settlement, fulfillment: fulfillment}
}

// Create godoc
// @ID           createStoreOrder
// @Summary      Create an ad-hoc order
// @Description  With generate_fee and an academic year the order is billed as a fee and
// @Description  stays UNPAID; otherwise it is paid, stock is deducted and the sale posted.
// @Tags         store-orders
// @Accept       json
// @Produce      json
// @Param        request body storeapp.CreateAdhocOrderRequest true "Order"
// @Success      201 {object} APIResponse[storeapp.CreateOrderResponse]
// @Failure      400 {object} ErrorResponse "INVALID_INPUT"
// @Failure      404 {object} ErrorResponse "ITEM_NOT_FOUND"
// @Router       /store/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req storeapp.CreateAdhocOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	resp, err := h.orders.CreateAdhocOrder(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listStoreOrders
// @Summary      List orders
// @Tags         store-orders
// @Produce      json
// @Param        student_id query string false "Student"
// @Param        package_id query string false "Package"
// @Param        status query string false "PENDING, FULFILLED or PARTIALLY_FULFILLED"
// @Param        payment_status query string false "UNPAID or PAID"
// @Param        source query string false "ADHOC or PACKAGE"
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]storeapp.OrderListItemResponse]
// @Router       /store/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter storeapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getStoreOrder
// @Summary      Get an order with its lines
// @Tags         store-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[storeapp.OrderResponse]
// @Failure      404 {object} ErrorResponse "ORDER_NOT_FOUND"
// @Router       /store/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Settle godoc
// @ID           settleStoreOrder
// @Summary      Settle an order
// @Description  Marks the order and its fee paid, deducts stock (backordering shortfalls)
// @Description  and posts the sale to the ledger, all in one transaction. A missing
// @Description  financial period does not fail settlement; posting.ledger_posted is false.
// @Tags         store-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body storeapp.SettleRequest false "Payment"
// @Success      200 {object} APIResponse[storeapp.SettlementResponse]
// @Failure      404 {object} ErrorResponse "ORDER_NOT_FOUND"
// @Failure      409 {object} ErrorResponse "ALREADY_SETTLED"
// @Router       /store/orders/{id}/settle [post]
func (h *OrderHandler) Settle(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req storeapp.SettleRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.SettledBy = middleware.GetUserID(c)

	resp, err := h.settlement.Settle(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Fulfill godoc
// @ID           fulfillStoreOrder
// @Summary      Record issuance of a paid order
// @Tags         store-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[storeapp.OrderResponse]
// @Failure      422 {object} ErrorResponse "NOT_PAID"
// @Router       /store/orders/{id}/fulfill [post]
func (h *OrderHandler) Fulfill(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	issuedBy := middleware.GetUserID(c)
	if issuedBy == nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Issuing user is required")
		return
	}

	order, err := h.fulfillment.Fulfill(c.Request.Context(), tenantID, id, storeapp.FulfillRequest{IssuedBy: *issuedBy})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// BackfillLedger godoc
// @ID           backfillStoreOrderLedger
// @Summary      Post a missed ledger entry for a paid order
// @Tags         store-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[storeapp.PostingResponse]
// @Failure      422 {object} ErrorResponse "NOT_PAID"
// @Router       /store/orders/{id}/ledger/backfill [post]
func (h *OrderHandler) BackfillLedger(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	posting, err := h.settlement.BackfillLedger(c.Request.Context(), tenantID, id, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, posting)
}
