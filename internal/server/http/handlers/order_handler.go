package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), principal, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Order created successfully", gin.H{"order": order}))
}

// MyOrders handles GET /api/orders/user/my-orders.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	orders, err := h.facade.MyOrders(c.Request.Context(), principal, model.ParseStatusClass(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.List("orders", orders, len(orders)))
}

// List handles GET /api/orders and its /api/admin alias.
func (h *OrderHandler) List(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	orders, err := h.facade.AllOrders(c.Request.Context(), principal, model.ParseStatusClass(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.List("orders", orders, len(orders)))
}

// Get handles GET /api/orders/:id. Admins receive the enriched view.
func (h *OrderHandler) Get(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	id := c.Param("id")
	var (
		order any
		err   error
	)
	if principal.IsAdmin() {
		order, err = h.facade.AdminOrder(c.Request.Context(), principal, id)
	} else {
		order, err = h.facade.OwnerOrder(c.Request.Context(), principal, id)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("", gin.H{"order": order}))
}

// UpdateStatus handles PUT /api/orders/:id/status and PATCH /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), principal, c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Order status updated successfully", gin.H{"order": order}))
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), principal, c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Order updated successfully", gin.H{"order": order}))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Order deleted successfully", gin.H{}))
}
