package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/shared"
)

// ShelfService handles shelf operations. Stock is never mutated here;
// only the receipt confirmation path touches it.
type ShelfService struct {
	shelfRepo     inventory.ShelfRepository
	warehouseRepo inventory.WarehouseRepository
}

// NewShelfService creates a new ShelfService
func NewShelfService(shelfRepo inventory.ShelfRepository, warehouseRepo inventory.WarehouseRepository) *ShelfService {
	return &ShelfService{shelfRepo: shelfRepo, warehouseRepo: warehouseRepo}
}

// Create creates a shelf at a unique location and position pair
func (s *ShelfService) Create(ctx context.Context, req CreateShelfRequest) (*ShelfResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	existing, err := s.shelfRepo.FindBySlot(ctx, req.Location, req.Position)
	if err == nil && existing != nil {
		return nil, shared.NewConflictError("Shelf at " + req.Location + "/" + req.Position + " already exists")
	}
	shelf, err := inventory.NewShelf(req.Location, req.Position, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := s.shelfRepo.Save(ctx, shelf); err != nil {
		return nil, err
	}
	resp := toShelfResponse(shelf)
	return &resp, nil
}

// Update moves a shelf to another location and position pair
func (s *ShelfService) Update(ctx context.Context, id uuid.UUID, req UpdateShelfRequest) (*ShelfResponse, error) {
	shelf, err := s.shelfRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := s.shelfRepo.FindBySlot(ctx, req.Location, req.Position)
	if err == nil && existing != nil && existing.ID != shelf.ID {
		return nil, shared.NewConflictError("Shelf at " + req.Location + "/" + req.Position + " already exists")
	}
	shelf.Location = req.Location
	shelf.Position = req.Position
	shelf.Touch()
	if err := s.shelfRepo.Save(ctx, shelf); err != nil {
		return nil, err
	}
	resp := toShelfResponse(shelf)
	return &resp, nil
}

// Get returns one shelf by ID
func (s *ShelfService) Get(ctx context.Context, id uuid.UUID) (*ShelfResponse, error) {
	shelf, err := s.shelfRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toShelfResponse(shelf)
	return &resp, nil
}

// List returns all shelves, optionally filtered by warehouse
func (s *ShelfService) List(ctx context.Context, warehouseID *uuid.UUID) ([]ShelfResponse, error) {
	var (
		shelves []inventory.Shelf
		err     error
	)
	if warehouseID != nil {
		shelves, err = s.shelfRepo.FindByWarehouse(ctx, *warehouseID)
	} else {
		shelves, err = s.shelfRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]ShelfResponse, 0, len(shelves))
	for i := range shelves {
		resp = append(resp, toShelfResponse(&shelves[i]))
	}
	return resp, nil
}

// Delete removes a shelf that holds no stock
func (s *ShelfService) Delete(ctx context.Context, id uuid.UUID) error {
	shelf, err := s.shelfRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if shelf.StockQty > 0 {
		return shared.NewStateError("Shelf still holds stock and cannot be deleted")
	}
	return s.shelfRepo.Delete(ctx, id)
}
