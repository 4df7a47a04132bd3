package catalog

import (
	"github.com/erp/procurement/internal/domain/shared"
)

// Item represents a material type that can be requested, purchased and stored
type Item struct {
	shared.BaseEntity
	Name       string `gorm:"type:varchar(200);not null"`
	Code       string `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartNumber string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name, code, partNumber string) (*Item, error) {
	if name == "" {
		return nil, shared.NewValidationError("Item name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("Item code cannot be empty")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		PartNumber: partNumber,
	}, nil
}

// Update replaces the mutable item fields
func (i *Item) Update(name, code, partNumber string) error {
	if name == "" {
		return shared.NewValidationError("Item name cannot be empty")
	}
	if code == "" {
		return shared.NewValidationError("Item code cannot be empty")
	}
	i.Name = name
	i.Code = code
	i.PartNumber = partNumber
	i.Touch()
	return nil
}
