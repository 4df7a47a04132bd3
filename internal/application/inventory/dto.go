package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/inventory"
)

// WarehouseRequest creates or updates a warehouse
type WarehouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
}

// WarehouseResponse is the API representation of a warehouse
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateShelfRequest creates a shelf in a warehouse
type CreateShelfRequest struct {
	Location    string    `json:"location" binding:"required"`
	Position    string    `json:"position" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
}

// UpdateShelfRequest moves a shelf to another slot
type UpdateShelfRequest struct {
	Location string `json:"location" binding:"required"`
	Position string `json:"position" binding:"required"`
}

// ShelfResponse is the API representation of a shelf
type ShelfResponse struct {
	ID          uuid.UUID  `json:"id"`
	Location    string     `json:"location"`
	Position    string     `json:"position"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	ItemID      *uuid.UUID `json:"item_id,omitempty"`
	StockQty    int        `json:"stock_qty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}

func toShelfResponse(s *inventory.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:          s.ID,
		Location:    s.Location,
		Position:    s.Position,
		WarehouseID: s.WarehouseID,
		ItemID:      s.ItemID,
		StockQty:    s.StockQty,
		CreatedAt:   s.CreatedAt,
	}
}
