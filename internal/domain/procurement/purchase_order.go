package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/procurement/internal/domain/shared"
)

// PurchaseOrder aggregates material request line items toward one or more
// suppliers. Once an incoming good receipt exists for it, the order is
// immutable.
type PurchaseOrder struct {
	shared.BaseEntity
	Number      string              `gorm:"column:no_po;type:varchar(20);not null;uniqueIndex"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedByID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one procured line. It references exactly one
// material request item, which must be pending when selected.
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	MaterialRequestItemID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Supplier              string           `gorm:"type:varchar(200);not null"`
	Quantity              int              `gorm:"not null"`
	Price                 *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Status                ItemStatus       `gorm:"type:varchar(20);not null;default:'proses'"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrderLine carries one procured line at creation or update time.
// A zero Status resolves to proses.
type PurchaseOrderLine struct {
	MaterialRequestItemID uuid.UUID
	Supplier              string
	Quantity              int
	Price                 *decimal.Decimal
	Status                ItemStatus
}

// NewPurchaseOrder creates an order shell without line items; lines are
// attached by the orchestrating service after eligibility checks.
func NewPurchaseOrder(number string, createdByID uuid.UUID) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewValidationError("Purchase order number cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewValidationError("Creator ID cannot be empty")
	}
	return &PurchaseOrder{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		Status:      POStatusDraft,
		CreatedByID: createdByID,
	}, nil
}

// NewPurchaseOrderItem creates one procured line from a request line
func NewPurchaseOrderItem(poID uuid.UUID, line PurchaseOrderLine) (*PurchaseOrderItem, error) {
	if line.MaterialRequestItemID == uuid.Nil {
		return nil, shared.NewValidationError("Material request item ID cannot be empty")
	}
	if line.Supplier == "" {
		return nil, shared.NewValidationError("Supplier cannot be empty")
	}
	if line.Quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	status := line.Status
	if status == "" {
		status = ItemStatusProses
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid purchase order item status: " + status.String())
	}
	return &PurchaseOrderItem{
		BaseEntity:            shared.NewBaseEntity(),
		PurchaseOrderID:       poID,
		MaterialRequestItemID: line.MaterialRequestItemID,
		Supplier:              line.Supplier,
		Quantity:              line.Quantity,
		Price:                 line.Price,
		Status:                status,
	}, nil
}

// IsApproved reports whether the order has reached approval quorum
func (po *PurchaseOrder) IsApproved() bool {
	return po.Status == POStatusApproved
}

// Approve marks the order approved after quorum has been reached
func (po *PurchaseOrder) Approve() error {
	if po.Status == POStatusApproved {
		return shared.NewStateError("Purchase order is already approved")
	}
	po.Status = POStatusApproved
	po.Touch()
	return nil
}

// ItemByID returns the line item with the given ID, or nil
func (po *PurchaseOrder) ItemByID(id uuid.UUID) *PurchaseOrderItem {
	for i := range po.Items {
		if po.Items[i].ID == id {
			return &po.Items[i]
		}
	}
	return nil
}
