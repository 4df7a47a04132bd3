package inventory

import (
	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/shared"
)

// Shelf is a storage slot identified by its location and position pair.
// A shelf holds stock of at most one item type; a shelf with zero stock
// can be claimed for a different item during goods receipt.
type Shelf struct {
	shared.BaseEntity
	Location    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_shelves_location_position"`
	Position    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_shelves_location_position"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID      *uuid.UUID `gorm:"type:uuid;index"`
	StockQty    int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Shelf) TableName() string {
	return "shelves"
}

// NewShelf creates an empty shelf at the given slot
func NewShelf(location, position string, warehouseID uuid.UUID) (*Shelf, error) {
	if location == "" {
		return nil, shared.NewValidationError("Shelf location cannot be empty")
	}
	if position == "" {
		return nil, shared.NewValidationError("Shelf position cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("Warehouse ID cannot be empty")
	}
	return &Shelf{
		BaseEntity:  shared.NewBaseEntity(),
		Location:    location,
		Position:    position,
		WarehouseID: warehouseID,
	}, nil
}

// Holds reports whether the shelf is assigned to the given item
func (s *Shelf) Holds(itemID uuid.UUID) bool {
	return s.ItemID != nil && *s.ItemID == itemID
}

// Claim assigns the shelf to an item type
func (s *Shelf) Claim(itemID uuid.UUID) {
	s.ItemID = &itemID
	s.Touch()
}

// AddStock increases the stock quantity held on the shelf
func (s *Shelf) AddStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	s.StockQty += quantity
	s.Touch()
	return nil
}

// RemoveStock decreases the stock quantity held on the shelf
func (s *Shelf) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if quantity > s.StockQty {
		return shared.NewValidationError("Insufficient stock on shelf")
	}
	s.StockQty -= quantity
	s.Touch()
	return nil
}
