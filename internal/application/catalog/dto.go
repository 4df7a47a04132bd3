package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/catalog"
)

// ItemRequest creates or updates a catalog item
type ItemRequest struct {
	Name       string `json:"name" binding:"required"`
	Code       string `json:"code" binding:"required"`
	PartNumber string `json:"part_number"`
}

// ItemResponse is the API representation of an item
type ItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	PartNumber string    `json:"part_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationRequest creates or updates a location
type LocationRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// LocationResponse is the API representation of a location
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Code:       item.Code,
		PartNumber: item.PartNumber,
		CreatedAt:  item.CreatedAt,
	}
}

func toLocationResponse(location *catalog.Location) LocationResponse {
	return LocationResponse{
		ID:        location.ID,
		Name:      location.Name,
		Code:      location.Code,
		CreatedAt: location.CreatedAt,
	}
}
