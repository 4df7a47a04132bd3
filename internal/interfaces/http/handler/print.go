package handler

import (
	"github.com/gin-gonic/gin"

	printingapp "github.com/erp/procurement/internal/application/printing"
)

// PrintHandler serves flattened document projections
type PrintHandler struct {
	BaseHandler
	printService *printingapp.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService *printingapp.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// MaterialRequest returns the printable projection of a material request
func (h *PrintHandler) MaterialRequest(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material request ID")
		return
	}
	doc, err := h.printService.MaterialRequestDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// PurchaseOrder returns the printable projection of a purchase order
func (h *PrintHandler) PurchaseOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}
	doc, err := h.printService.PurchaseOrderDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// DeliveryOrder returns the printable projection of a delivery order
func (h *PrintHandler) DeliveryOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}
	doc, err := h.printService.DeliveryOrderDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Receipt returns the printable projection of an incoming good receipt
func (h *PrintHandler) Receipt(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}
	doc, err := h.printService.ReceiptDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}
