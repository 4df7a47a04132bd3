package procurement

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/shared"
)

// IncomingGoodReceipt records goods physically received against an
// approved purchase order. Receipts are only ever created by the purchase
// order approval reaching quorum, never directly by a user.
type IncomingGoodReceipt struct {
	shared.BaseEntity
	Number          string                    `gorm:"column:no_igr;type:varchar(20);not null;uniqueIndex"`
	ReceivedDate    time.Time                 `gorm:"not null"`
	PurchaseOrderID uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	Items           []IncomingGoodReceiptItem `gorm:"foreignKey:IncomingGoodReceiptID"`
}

// TableName returns the table name for GORM
func (IncomingGoodReceipt) TableName() string {
	return "incoming_good_receipts"
}

// IncomingGoodReceiptItem is one received line, bound to the shelf the
// goods are stored on
type IncomingGoodReceiptItem struct {
	shared.BaseEntity
	IncomingGoodReceiptID uuid.UUID         `gorm:"type:uuid;not null;index"`
	ItemID                uuid.UUID         `gorm:"type:uuid;not null;index"`
	PurchaseOrderItemID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ShelfID               uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity              int               `gorm:"not null"`
	Status                ReceiptItemStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (IncomingGoodReceiptItem) TableName() string {
	return "incoming_good_receipt_items"
}

// NewIncomingGoodReceipt creates a receipt for an approved purchase order
func NewIncomingGoodReceipt(number string, purchaseOrderID uuid.UUID) (*IncomingGoodReceipt, error) {
	if number == "" {
		return nil, shared.NewValidationError("Receipt number cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewValidationError("Purchase order ID cannot be empty")
	}
	return &IncomingGoodReceipt{
		BaseEntity:      shared.NewBaseEntity(),
		Number:          number,
		ReceivedDate:    time.Now(),
		PurchaseOrderID: purchaseOrderID,
	}, nil
}

// AddItem appends a pending receipt line for a purchase order line
func (igr *IncomingGoodReceipt) AddItem(itemID, purchaseOrderItemID, shelfID uuid.UUID, quantity int) error {
	if itemID == uuid.Nil || purchaseOrderItemID == uuid.Nil || shelfID == uuid.Nil {
		return shared.NewValidationError("Receipt item references cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	igr.Items = append(igr.Items, IncomingGoodReceiptItem{
		BaseEntity:            shared.NewBaseEntity(),
		IncomingGoodReceiptID: igr.ID,
		ItemID:                itemID,
		PurchaseOrderItemID:   purchaseOrderItemID,
		ShelfID:               shelfID,
		Quantity:              quantity,
		Status:                ReceiptItemStatusPending,
	})
	return nil
}

// ChangeStatus validates and applies a status transition on a receipt
// item. Setting the current status again is reported as a no-op so the
// caller can skip the stock side effect. A rejected line stays rejected.
func (item *IncomingGoodReceiptItem) ChangeStatus(next ReceiptItemStatus) (changed bool, err error) {
	if !next.IsValid() {
		return false, shared.NewValidationError("Invalid receipt item status: " + next.String())
	}
	if next == item.Status {
		return false, nil
	}
	if item.Status == ReceiptItemStatusRejected {
		return false, shared.NewStateError("Receipt item is rejected and cannot transition to " + next.String())
	}
	item.Status = next
	item.Touch()
	return true, nil
}
