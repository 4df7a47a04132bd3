package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/erp/procurement/internal/application/procurement"
)

// MaterialRequestHandler handles material request endpoints
type MaterialRequestHandler struct {
	BaseHandler
	mrService *procurementapp.MaterialRequestService
}

// NewMaterialRequestHandler creates a new MaterialRequestHandler
func NewMaterialRequestHandler(mrService *procurementapp.MaterialRequestService) *MaterialRequestHandler {
	return &MaterialRequestHandler{mrService: mrService}
}

// Create creates a material request for the authenticated user
func (h *MaterialRequestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user identity")
		return
	}
	var req procurementapp.CreateMaterialRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	mr, err := h.mrService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, mr)
}

// Update replaces a material request's remarks and item set
func (h *MaterialRequestHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material request ID")
		return
	}
	var req procurementapp.UpdateMaterialRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	mr, err := h.mrService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mr)
}

// Get returns one material request
func (h *MaterialRequestHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material request ID")
		return
	}
	mr, err := h.mrService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mr)
}

// List returns all material requests
func (h *MaterialRequestHandler) List(c *gin.Context) {
	mrs, err := h.mrService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mrs)
}

// Delete removes a material request
func (h *MaterialRequestHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material request ID")
		return
	}
	if err := h.mrService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
