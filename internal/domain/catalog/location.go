package catalog

import (
	"github.com/erp/procurement/internal/domain/shared"
)

// Location represents a site a material request is raised for
type Location struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(200);not null"`
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location
func NewLocation(name, code string) (*Location, error) {
	if name == "" {
		return nil, shared.NewValidationError("Location name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("Location code cannot be empty")
	}
	return &Location{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
	}, nil
}

// Update replaces the mutable location fields
func (l *Location) Update(name, code string) error {
	if name == "" {
		return shared.NewValidationError("Location name cannot be empty")
	}
	if code == "" {
		return shared.NewValidationError("Location code cannot be empty")
	}
	l.Name = name
	l.Code = code
	l.Touch()
	return nil
}
