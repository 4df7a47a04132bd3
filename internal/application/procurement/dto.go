package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/procurement/internal/domain/procurement"
)

// MaterialRequestLineRequest is one requested line in a create or update
type MaterialRequestLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
	Duration string    `json:"duration"`
}

// CreateMaterialRequestRequest is the request to create a material request
type CreateMaterialRequestRequest struct {
	LocationID uuid.UUID                    `json:"location_id" binding:"required"`
	Remarks    string                       `json:"remarks"`
	Items      []MaterialRequestLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateMaterialRequestRequest replaces the remarks and the whole item set
type UpdateMaterialRequestRequest struct {
	Remarks string                       `json:"remarks"`
	Items   []MaterialRequestLineRequest `json:"items" binding:"required,min=1,dive"`
}

// MaterialRequestItemResponse is one line of a material request
type MaterialRequestItemResponse struct {
	ID       uuid.UUID `json:"id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
	Duration string    `json:"duration"`
	Status   string    `json:"status"`
}

// MaterialRequestResponse is the API representation of a material request
type MaterialRequestResponse struct {
	ID              uuid.UUID                     `json:"id"`
	Number          string                        `json:"no_mr"`
	Status          string                        `json:"status"`
	Remarks         string                        `json:"remarks"`
	LocationID      uuid.UUID                     `json:"location_id"`
	CreatedByID     uuid.UUID                     `json:"created_by_id"`
	PurchaseOrderID *uuid.UUID                    `json:"purchase_order_id,omitempty"`
	Items           []MaterialRequestItemResponse `json:"items"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

// PurchaseOrderLineRequest is one procured line in a create or update.
// ID is set on update for lines that already exist.
type PurchaseOrderLineRequest struct {
	ID                    *uuid.UUID       `json:"id"`
	MaterialRequestItemID uuid.UUID        `json:"material_request_item_id" binding:"required"`
	Supplier              string           `json:"supplier" binding:"required"`
	Quantity              int              `json:"quantity" binding:"required,gt=0"`
	Price                 *decimal.Decimal `json:"price"`
	Status                string           `json:"status"`
}

// CreatePurchaseOrderRequest is the request to create a purchase order.
// MaterialRequestIDs may list requests to link even when none of their
// items appear in Items.
type CreatePurchaseOrderRequest struct {
	Items              []PurchaseOrderLineRequest `json:"items" binding:"required,min=1,dive"`
	MaterialRequestIDs []uuid.UUID                `json:"material_request_ids"`
}

// UpdatePurchaseOrderRequest replaces the order's line set by diffing
type UpdatePurchaseOrderRequest struct {
	Items              []PurchaseOrderLineRequest `json:"items" binding:"required,min=1,dive"`
	MaterialRequestIDs []uuid.UUID                `json:"material_request_ids"`
}

// PurchaseOrderItemResponse is one line of a purchase order
type PurchaseOrderItemResponse struct {
	ID                    uuid.UUID        `json:"id"`
	MaterialRequestItemID uuid.UUID        `json:"material_request_item_id"`
	Supplier              string           `json:"supplier"`
	Quantity              int              `json:"quantity"`
	Price                 *decimal.Decimal `json:"price,omitempty"`
	Status                string           `json:"status"`
}

// PurchaseOrderResponse is the API representation of a purchase order
type PurchaseOrderResponse struct {
	ID          uuid.UUID                   `json:"id"`
	Number      string                      `json:"no_po"`
	Status      string                      `json:"status"`
	CreatedByID uuid.UUID                   `json:"created_by_id"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	Approvals   int64                       `json:"approvals"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// ApprovalResult reports the outcome of one approval
type ApprovalResult struct {
	DocumentID    uuid.UUID `json:"document_id"`
	Approvals     int64     `json:"approvals"`
	QuorumReached bool      `json:"quorum_reached"`
}

// ApprovalResponse is one recorded approval on a document. Sequence is
// the 1-based position in approval order.
type ApprovalResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}

// ApprovalListResponse summarizes the approval state of a document
type ApprovalListResponse struct {
	Status    string             `json:"status"` // pending, partially_approved, approved
	Remaining int64              `json:"remaining"`
	Approvals []ApprovalResponse `json:"approvals"`
}

// ReceiptItemResponse is one line of an incoming good receipt
type ReceiptItemResponse struct {
	ID                  uuid.UUID `json:"id"`
	ItemID              uuid.UUID `json:"item_id"`
	PurchaseOrderItemID uuid.UUID `json:"purchase_order_item_id"`
	ShelfID             uuid.UUID `json:"shelf_id"`
	Quantity            int       `json:"quantity"`
	Status              string    `json:"status"`
}

// ReceiptResponse is the API representation of an incoming good receipt
type ReceiptResponse struct {
	ID              uuid.UUID             `json:"id"`
	Number          string                `json:"no_igr"`
	ReceivedDate    time.Time             `json:"received_date"`
	PurchaseOrderID uuid.UUID             `json:"purchase_order_id"`
	Items           []ReceiptItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// UpdateReceiptItemStatusRequest sets a new status on a receipt line
type UpdateReceiptItemStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending received rejected"`
}

func toMaterialRequestResponse(mr *procurement.MaterialRequest) *MaterialRequestResponse {
	resp := &MaterialRequestResponse{
		ID:              mr.ID,
		Number:          mr.Number,
		Status:          mr.Status.String(),
		Remarks:         mr.Remarks,
		LocationID:      mr.LocationID,
		CreatedByID:     mr.CreatedByID,
		PurchaseOrderID: mr.PurchaseOrderID,
		Items:           make([]MaterialRequestItemResponse, 0, len(mr.Items)),
		CreatedAt:       mr.CreatedAt,
		UpdatedAt:       mr.UpdatedAt,
	}
	for _, item := range mr.Items {
		resp.Items = append(resp.Items, MaterialRequestItemResponse{
			ID:       item.ID,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Duration: item.Duration,
			Status:   item.Status.String(),
		})
	}
	return resp
}

func toPurchaseOrderResponse(po *procurement.PurchaseOrder, approvals int64) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:          po.ID,
		Number:      po.Number,
		Status:      po.Status.String(),
		CreatedByID: po.CreatedByID,
		Items:       make([]PurchaseOrderItemResponse, 0, len(po.Items)),
		Approvals:   approvals,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
	for _, item := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:                    item.ID,
			MaterialRequestItemID: item.MaterialRequestItemID,
			Supplier:              item.Supplier,
			Quantity:              item.Quantity,
			Price:                 item.Price,
			Status:                item.Status.String(),
		})
	}
	return resp
}

func toReceiptResponse(igr *procurement.IncomingGoodReceipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		ID:              igr.ID,
		Number:          igr.Number,
		ReceivedDate:    igr.ReceivedDate,
		PurchaseOrderID: igr.PurchaseOrderID,
		Items:           make([]ReceiptItemResponse, 0, len(igr.Items)),
		CreatedAt:       igr.CreatedAt,
		UpdatedAt:       igr.UpdatedAt,
	}
	for _, item := range igr.Items {
		resp.Items = append(resp.Items, ReceiptItemResponse{
			ID:                  item.ID,
			ItemID:              item.ItemID,
			PurchaseOrderItemID: item.PurchaseOrderItemID,
			ShelfID:             item.ShelfID,
			Quantity:            item.Quantity,
			Status:              item.Status.String(),
		})
	}
	return resp
}
