package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/shared"
)

// ShelfAllocator resolves the shelf a received item is stored on.
// Preference order: a shelf already holding the item, then a shelf with
// zero stock (claimed for the item), then any shelf at all, each
// earliest-created first. Allocation fails only when no shelf exists.
type ShelfAllocator struct{}

// NewShelfAllocator creates a new ShelfAllocator
func NewShelfAllocator() *ShelfAllocator {
	return &ShelfAllocator{}
}

// Allocate picks a shelf for the item using the repository scoped to the
// caller's transaction. A claimed empty shelf is persisted before it is
// returned.
func (a *ShelfAllocator) Allocate(ctx context.Context, shelves inventory.ShelfRepository, itemID uuid.UUID) (*inventory.Shelf, error) {
	shelf, err := shelves.FindEarliestByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if shelf != nil {
		return shelf, nil
	}

	shelf, err = shelves.FindEarliestEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if shelf != nil {
		shelf.Claim(itemID)
		if err := shelves.Save(ctx, shelf); err != nil {
			return nil, err
		}
		return shelf, nil
	}

	shelf, err = shelves.FindEarliest(ctx)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, shared.NewDependencyError("No shelf available to store item " + itemID.String())
	}
	return shelf, nil
}
