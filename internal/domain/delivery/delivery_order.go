package delivery

import (
	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/shared"
)

// Status represents the status of a delivery order
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDone     Status = "done"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusDone
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// DeliveryOrder records goods delivered to satisfy a single material
// request after procurement has started for its lines.
type DeliveryOrder struct {
	shared.BaseEntity
	Number            string              `gorm:"column:no_do;type:varchar(20);not null;uniqueIndex"`
	Status            Status              `gorm:"type:varchar(20);not null;default:'pending'"`
	Remarks           string              `gorm:"type:text"`
	MaterialRequestID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items             []DeliveryOrderItem `gorm:"foreignKey:DeliveryOrderID"`
}

// TableName returns the table name for GORM
func (DeliveryOrder) TableName() string {
	return "delivery_orders"
}

// DeliveryOrderItem is one delivered line, referencing the material
// request item it satisfies
type DeliveryOrderItem struct {
	shared.BaseEntity
	DeliveryOrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	MaterialRequestItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity              int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryOrderItem) TableName() string {
	return "delivery_order_items"
}

// Line carries one delivered line at creation time
type Line struct {
	MaterialRequestItemID uuid.UUID
	Quantity              int
}

// NewDeliveryOrder creates a pending delivery order with its lines
func NewDeliveryOrder(number string, materialRequestID uuid.UUID, remarks string, lines []Line) (*DeliveryOrder, error) {
	if number == "" {
		return nil, shared.NewValidationError("Delivery order number cannot be empty")
	}
	if materialRequestID == uuid.Nil {
		return nil, shared.NewValidationError("Material request ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("Delivery order must have at least one item")
	}

	do := &DeliveryOrder{
		BaseEntity:        shared.NewBaseEntity(),
		Number:            number,
		Status:            StatusPending,
		Remarks:           remarks,
		MaterialRequestID: materialRequestID,
	}
	for _, line := range lines {
		if line.MaterialRequestItemID == uuid.Nil {
			return nil, shared.NewValidationError("Material request item ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewValidationError("Quantity must be positive")
		}
		do.Items = append(do.Items, DeliveryOrderItem{
			BaseEntity:            shared.NewBaseEntity(),
			DeliveryOrderID:       do.ID,
			MaterialRequestItemID: line.MaterialRequestItemID,
			Quantity:              line.Quantity,
		})
	}
	return do, nil
}

// IsApproved reports whether the order has reached approval quorum
func (do *DeliveryOrder) IsApproved() bool {
	return do.Status == StatusApproved
}

// Approve marks the order approved after quorum has been reached
func (do *DeliveryOrder) Approve() error {
	if do.Status == StatusApproved {
		return shared.NewStateError("Delivery order is already approved")
	}
	do.Status = StatusApproved
	do.Touch()
	return nil
}
