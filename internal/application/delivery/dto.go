package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/delivery"
)

// DeliveryOrderLineRequest is one delivered line in a create
type DeliveryOrderLineRequest struct {
	MaterialRequestItemID uuid.UUID `json:"material_request_item_id" binding:"required"`
	Quantity              int       `json:"quantity" binding:"required,gt=0"`
}

// CreateDeliveryOrderRequest is the request to create a delivery order
type CreateDeliveryOrderRequest struct {
	MaterialRequestID uuid.UUID                  `json:"material_request_id" binding:"required"`
	Remarks           string                     `json:"remarks"`
	Items             []DeliveryOrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// DeliveryOrderItemResponse is one line of a delivery order
type DeliveryOrderItemResponse struct {
	ID                    uuid.UUID `json:"id"`
	MaterialRequestItemID uuid.UUID `json:"material_request_item_id"`
	Quantity              int       `json:"quantity"`
}

// DeliveryOrderResponse is the API representation of a delivery order
type DeliveryOrderResponse struct {
	ID                uuid.UUID                   `json:"id"`
	Number            string                      `json:"no_do"`
	Status            string                      `json:"status"`
	Remarks           string                      `json:"remarks"`
	MaterialRequestID uuid.UUID                   `json:"material_request_id"`
	Items             []DeliveryOrderItemResponse `json:"items"`
	Approvals         int64                       `json:"approvals"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// ApprovalResult reports the outcome of one approval
type ApprovalResult struct {
	DocumentID    uuid.UUID `json:"document_id"`
	Approvals     int64     `json:"approvals"`
	QuorumReached bool      `json:"quorum_reached"`
}

// ApprovalResponse is one recorded approval in approval order
type ApprovalResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}

// ApprovalListResponse summarizes the approval state of a delivery order
type ApprovalListResponse struct {
	Status    string             `json:"status"` // pending, partially_approved, approved
	Remaining int64              `json:"remaining"`
	Approvals []ApprovalResponse `json:"approvals"`
}

func toDeliveryOrderResponse(do *delivery.DeliveryOrder, approvals int64) *DeliveryOrderResponse {
	resp := &DeliveryOrderResponse{
		ID:                do.ID,
		Number:            do.Number,
		Status:            do.Status.String(),
		Remarks:           do.Remarks,
		MaterialRequestID: do.MaterialRequestID,
		Items:             make([]DeliveryOrderItemResponse, 0, len(do.Items)),
		Approvals:         approvals,
		CreatedAt:         do.CreatedAt,
		UpdatedAt:         do.UpdatedAt,
	}
	for _, item := range do.Items {
		resp.Items = append(resp.Items, DeliveryOrderItemResponse{
			ID:                    item.ID,
			MaterialRequestItemID: item.MaterialRequestItemID,
			Quantity:              item.Quantity,
		})
	}
	return resp
}
