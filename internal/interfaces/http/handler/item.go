package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/schoolstore/backend/internal/application/catalog"
	"github.com/schoolstore/backend/internal/interfaces/http/middleware"
)

// ItemService is the catalog surface used by ItemHandler
type ItemService interface {
	CreateItem(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreateItemRequest) (*catalogapp.ItemResponse, error)
	GetItem(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.ItemResponse, error)
	ListItems(ctx context.Context, tenantID uuid.UUID, filter catalogapp.ItemListFilter) ([]catalogapp.ItemResponse, int64, error)
	GetStock(ctx context.Context, tenantID, itemID uuid.UUID) (*catalogapp.StockResponse, error)
	AdjustStock(ctx context.Context, tenantID, itemID uuid.UUID, req catalogapp.AdjustStockRequest) (*catalogapp.StockResponse, error)
	ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalogapp.StockResponse, error)
}

// ItemHandler handles catalog item endpoints
type ItemHandler struct {
	BaseHandler
	items ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// Create godoc
// @ID           createStoreItem
// @Summary      Create a catalog item
// @Description  Adds a sellable item, optionally with opening stock
// @Tags         store-items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemRequest true "Item"
// @Success      201 {object} APIResponse[catalogapp.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /store/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req catalogapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	item, err := h.items.CreateItem(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List godoc
// @ID           listStoreItems
// @Summary      List catalog items
// @Tags         store-items
// @Produce      json
// @Param        search query string false "Name search"
// @Param        type query string false "BOOK, UNIFORM, STATIONERY or OTHER"
// @Param        grade query string false "Grade"
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]catalogapp.ItemResponse]
// @Router       /store/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter catalogapp.ItemListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.items.ListItems(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getStoreItem
// @Summary      Get a catalog item
// @Tags         store-items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} APIResponse[catalogapp.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /store/items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.items.GetItem(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// GetStock godoc
// @ID           getStoreItemStock
// @Summary      Get on-hand stock for an item
// @Tags         store-items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} APIResponse[catalogapp.StockResponse]
// @Router       /store/items/{id}/stock [get]
func (h *ItemHandler) GetStock(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	stock, err := h.items.GetStock(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// AdjustStock godoc
// @ID           adjustStoreItemStock
// @Summary      Set or restock on-hand quantity
// @Tags         store-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body catalogapp.AdjustStockRequest true "Adjustment"
// @Success      200 {object} APIResponse[catalogapp.StockResponse]
// @Router       /store/items/{id}/stock [put]
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.items.AdjustStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListLowStock godoc
// @ID           listStoreLowStock
// @Summary      List items at or below their low-stock threshold
// @Tags         store-items
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.StockResponse]
// @Router       /store/stock/low [get]
func (h *ItemHandler) ListLowStock(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	stock, err := h.items.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}
