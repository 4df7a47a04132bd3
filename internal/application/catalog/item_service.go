package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/shared"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Create creates a new item with a unique code
func (s *ItemService) Create(ctx context.Context, req ItemRequest) (*ItemResponse, error) {
	existing, err := s.itemRepo.FindByCode(ctx, req.Code)
	if err == nil && existing != nil {
		return nil, shared.NewConflictError("Item code " + req.Code + " already exists")
	}
	item, err := catalog.NewItem(req.Name, req.Code, req.PartNumber)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Update replaces an item's fields
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req ItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Code != req.Code {
		existing, err := s.itemRepo.FindByCode(ctx, req.Code)
		if err == nil && existing != nil {
			return nil, shared.NewConflictError("Item code " + req.Code + " already exists")
		}
	}
	if err := item.Update(req.Name, req.Code, req.PartNumber); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Get returns one item by ID
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// List returns all items
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return resp, nil
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}
