package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/shared"
)

// LocationService handles location operations
type LocationService struct {
	locationRepo catalog.LocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo catalog.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Create creates a new location with a unique code
func (s *LocationService) Create(ctx context.Context, req LocationRequest) (*LocationResponse, error) {
	existing, err := s.locationRepo.FindByCode(ctx, req.Code)
	if err == nil && existing != nil {
		return nil, shared.NewConflictError("Location code " + req.Code + " already exists")
	}
	location, err := catalog.NewLocation(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	resp := toLocationResponse(location)
	return &resp, nil
}

// Update replaces a location's fields
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req LocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location.Code != req.Code {
		existing, err := s.locationRepo.FindByCode(ctx, req.Code)
		if err == nil && existing != nil {
			return nil, shared.NewConflictError("Location code " + req.Code + " already exists")
		}
	}
	if err := location.Update(req.Name, req.Code); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	resp := toLocationResponse(location)
	return &resp, nil
}

// Get returns one location by ID
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toLocationResponse(location)
	return &resp, nil
}

// List returns all locations
func (s *LocationService) List(ctx context.Context) ([]LocationResponse, error) {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		resp = append(resp, toLocationResponse(&locations[i]))
	}
	return resp, nil
}

// Delete removes a location
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
