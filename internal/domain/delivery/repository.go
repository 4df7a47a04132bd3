package delivery

import (
	"context"

	"github.com/google/uuid"
)

// DeliveryOrderRepository provides access to delivery order storage
type DeliveryOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryOrder, error)
	FindByNumber(ctx context.Context, number string) (*DeliveryOrder, error)
	FindAll(ctx context.Context) ([]DeliveryOrder, error)
	// FindApprovedByMaterialRequest returns all approved delivery orders
	// linked to the material request, items preloaded
	FindApprovedByMaterialRequest(ctx context.Context, mrID uuid.UUID) ([]DeliveryOrder, error)
	LastNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, do *DeliveryOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
