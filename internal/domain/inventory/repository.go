package inventory

import (
	"context"

	"github.com/google/uuid"
)

// WarehouseRepository provides access to warehouse storage
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByCode(ctx context.Context, code string) (*Warehouse, error)
	FindAll(ctx context.Context) ([]Warehouse, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShelfRepository provides access to shelf storage. The three Earliest
// finders back the shelf allocator and must order by creation time
// ascending.
type ShelfRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shelf, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]Shelf, error)
	FindBySlot(ctx context.Context, location, position string) (*Shelf, error)
	FindAll(ctx context.Context) ([]Shelf, error)
	// FindEarliestByItem returns the oldest shelf already holding the item,
	// or nil when none exists
	FindEarliestByItem(ctx context.Context, itemID uuid.UUID) (*Shelf, error)
	// FindEarliestEmpty returns the oldest shelf with zero stock, or nil
	// when none exists
	FindEarliestEmpty(ctx context.Context) (*Shelf, error)
	// FindEarliest returns the oldest shelf of all, or nil when no shelf
	// is defined
	FindEarliest(ctx context.Context) (*Shelf, error)
	Save(ctx context.Context, shelf *Shelf) error
	Delete(ctx context.Context, id uuid.UUID) error
}
