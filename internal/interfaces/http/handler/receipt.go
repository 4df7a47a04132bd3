package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/procurement"
)

// ReceiptHandler handles incoming good receipt endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *procurementapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *procurementapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get returns one receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}
	igr, err := h.receiptService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, igr)
}

// List returns all receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	igrs, err := h.receiptService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, igrs)
}

// UpdateItemStatus transitions one receipt line
func (h *ReceiptHandler) UpdateItemStatus(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid receipt item ID")
		return
	}
	var req procurementapp.UpdateReceiptItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.receiptService.UpdateItemStatus(c.Request.Context(), itemID, procurement.ReceiptItemStatus(req.Status)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}
	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
