package handler

import (
	"github.com/gin-gonic/gin"

	deliveryapp "github.com/erp/procurement/internal/application/delivery"
)

// DeliveryOrderHandler handles delivery order endpoints
type DeliveryOrderHandler struct {
	BaseHandler
	doService *deliveryapp.DeliveryOrderService
}

// NewDeliveryOrderHandler creates a new DeliveryOrderHandler
func NewDeliveryOrderHandler(doService *deliveryapp.DeliveryOrderService) *DeliveryOrderHandler {
	return &DeliveryOrderHandler{doService: doService}
}

// Create creates a delivery order
func (h *DeliveryOrderHandler) Create(c *gin.Context) {
	var req deliveryapp.CreateDeliveryOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	do, err := h.doService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, do)
}

// Approve records the authenticated admin's approval
func (h *DeliveryOrderHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user identity")
		return
	}
	result, err := h.doService.Approve(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Approvals lists the approvals on a delivery order
func (h *DeliveryOrderHandler) Approvals(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}
	approvals, err := h.doService.Approvals(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, approvals)
}

// Get returns one delivery order
func (h *DeliveryOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}
	do, err := h.doService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, do)
}

// List returns all delivery orders
func (h *DeliveryOrderHandler) List(c *gin.Context) {
	dos, err := h.doService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dos)
}

// Delete removes a pending delivery order
func (h *DeliveryOrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}
	if err := h.doService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
