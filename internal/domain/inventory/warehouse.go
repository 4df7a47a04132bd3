package inventory

import (
	"github.com/erp/procurement/internal/domain/shared"
)

// Warehouse represents a physical storage site holding shelves
type Warehouse struct {
	shared.BaseEntity
	Name    string  `gorm:"type:varchar(200);not null"`
	Code    string  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address string  `gorm:"type:text"`
	Shelves []Shelf `gorm:"foreignKey:WarehouseID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name, code, address string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewValidationError("Warehouse name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("Warehouse code cannot be empty")
	}
	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		Address:    address,
	}, nil
}

// Update replaces the mutable warehouse fields
func (w *Warehouse) Update(name, code, address string) error {
	if name == "" {
		return shared.NewValidationError("Warehouse name cannot be empty")
	}
	if code == "" {
		return shared.NewValidationError("Warehouse code cannot be empty")
	}
	w.Name = name
	w.Code = code
	w.Address = address
	w.Touch()
	return nil
}
