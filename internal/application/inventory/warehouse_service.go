package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/shared"
)

// WarehouseService handles warehouse operations
type WarehouseService struct {
	warehouseRepo inventory.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo inventory.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// Create creates a new warehouse with a unique code
func (s *WarehouseService) Create(ctx context.Context, req WarehouseRequest) (*WarehouseResponse, error) {
	existing, err := s.warehouseRepo.FindByCode(ctx, req.Code)
	if err == nil && existing != nil {
		return nil, shared.NewConflictError("Warehouse code " + req.Code + " already exists")
	}
	warehouse, err := inventory.NewWarehouse(req.Name, req.Code, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// Update replaces a warehouse's fields
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req WarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse.Code != req.Code {
		existing, err := s.warehouseRepo.FindByCode(ctx, req.Code)
		if err == nil && existing != nil {
			return nil, shared.NewConflictError("Warehouse code " + req.Code + " already exists")
		}
	}
	if err := warehouse.Update(req.Name, req.Code, req.Address); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// Get returns one warehouse by ID
func (s *WarehouseService) Get(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// List returns all warehouses
func (s *WarehouseService) List(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		resp = append(resp, toWarehouseResponse(&warehouses[i]))
	}
	return resp, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.warehouseRepo.Delete(ctx, id)
}
