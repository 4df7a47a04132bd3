package procurement

import (
	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/shared"
)

// MaterialRequest is a user's request for materials at a location. Its
// status is always recomputed from its items, never set independently;
// the recomputation vocabulary depends on which path touched the items
// (see status.go).
type MaterialRequest struct {
	shared.BaseEntity
	Number          string                `gorm:"column:no_mr;type:varchar(20);not null;uniqueIndex"`
	Status          MaterialRequestStatus `gorm:"type:varchar(20);not null"`
	Remarks         string                `gorm:"type:text"`
	LocationID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	CreatedByID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	PurchaseOrderID *uuid.UUID            `gorm:"type:uuid;index"`
	Items           []MaterialRequestItem `gorm:"foreignKey:MaterialRequestID"`
}

// TableName returns the table name for GORM
func (MaterialRequest) TableName() string {
	return "material_requests"
}

// MaterialRequestItem is a single requested line of a material request
type MaterialRequestItem struct {
	shared.BaseEntity
	MaterialRequestID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity          int        `gorm:"not null"`
	Duration          string     `gorm:"type:varchar(100)"`
	Status            ItemStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (MaterialRequestItem) TableName() string {
	return "material_request_items"
}

// MaterialRequestLine carries one requested line at creation or update time
type MaterialRequestLine struct {
	ItemID   uuid.UUID
	Quantity int
	Duration string
}

// NewMaterialRequest creates a material request with its line items. Every
// line starts pending; the initial status follows the creation derivation.
func NewMaterialRequest(number string, locationID, createdByID uuid.UUID, remarks string, lines []MaterialRequestLine) (*MaterialRequest, error) {
	if number == "" {
		return nil, shared.NewValidationError("Material request number cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("Location ID cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewValidationError("Creator ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("Material request must have at least one item")
	}

	mr := &MaterialRequest{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		Remarks:     remarks,
		LocationID:  locationID,
		CreatedByID: createdByID,
	}
	for _, line := range lines {
		item, err := newMaterialRequestItem(mr.ID, line)
		if err != nil {
			return nil, err
		}
		mr.Items = append(mr.Items, *item)
	}
	mr.Status = DeriveCreationStatus(mr.Items)
	return mr, nil
}

func newMaterialRequestItem(requestID uuid.UUID, line MaterialRequestLine) (*MaterialRequestItem, error) {
	if line.ItemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID cannot be empty")
	}
	if line.Quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	return &MaterialRequestItem{
		BaseEntity:        shared.NewBaseEntity(),
		MaterialRequestID: requestID,
		ItemID:            line.ItemID,
		Quantity:          line.Quantity,
		Duration:          line.Duration,
		Status:            ItemStatusPending,
	}, nil
}

// ReplaceItems swaps the entire item set for a fresh one and recomputes
// the status with the update derivation. This is a replacement, not a
// merge: callers persist it by deleting the old rows and inserting the
// new ones.
func (mr *MaterialRequest) ReplaceItems(lines []MaterialRequestLine) error {
	if len(lines) == 0 {
		return shared.NewValidationError("Material request must have at least one item")
	}
	items := make([]MaterialRequestItem, 0, len(lines))
	for _, line := range lines {
		item, err := newMaterialRequestItem(mr.ID, line)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}
	mr.Items = items
	mr.Status = DeriveUpdateStatus(mr.Items)
	mr.Touch()
	return nil
}

// LinkToPurchaseOrder records the purchase order this request was pulled
// into and recomputes the status with the order-linked derivation.
func (mr *MaterialRequest) LinkToPurchaseOrder(poID uuid.UUID) {
	mr.PurchaseOrderID = &poID
	if len(mr.Items) > 0 {
		mr.Status = DeriveLinkedStatus(mr.Items)
	}
	mr.Touch()
}

// AttachPurchaseOrder sets the back-reference without touching the
// status. Used for requests listed on an order when none of their items
// were selected.
func (mr *MaterialRequest) AttachPurchaseOrder(poID uuid.UUID) {
	mr.PurchaseOrderID = &poID
	mr.Touch()
}

// Detach clears the back-reference and recomputes the status from the
// request's own items with the order-linked derivation. Used when an
// order edit drops the request.
func (mr *MaterialRequest) Detach() {
	mr.PurchaseOrderID = nil
	if len(mr.Items) > 0 {
		mr.Status = DeriveLinkedStatus(mr.Items)
	}
	mr.Touch()
}

// Unlink detaches the request from its purchase order and resets it to
// pending, as happens when the order is deleted or edited away from it.
func (mr *MaterialRequest) Unlink() {
	mr.PurchaseOrderID = nil
	mr.Status = MRStatusPending
	mr.Touch()
}

// IsCancelled reports whether the request has been cancelled
func (mr *MaterialRequest) IsCancelled() bool {
	return mr.Status == MRStatusCancelled
}

// ItemByID returns the line item with the given ID, or nil
func (mr *MaterialRequest) ItemByID(id uuid.UUID) *MaterialRequestItem {
	for i := range mr.Items {
		if mr.Items[i].ID == id {
			return &mr.Items[i]
		}
	}
	return nil
}
