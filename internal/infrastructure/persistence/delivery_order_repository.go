package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/delivery"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormDeliveryOrderRepository implements DeliveryOrderRepository using GORM
type GormDeliveryOrderRepository struct {
	db *gorm.DB
}

// NewGormDeliveryOrderRepository creates a new GormDeliveryOrderRepository
func NewGormDeliveryOrderRepository(db *gorm.DB) *GormDeliveryOrderRepository {
	return &GormDeliveryOrderRepository{db: db}
}

// FindByID finds a delivery order by its ID with items preloaded
func (r *GormDeliveryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.DeliveryOrder, error) {
	var do delivery.DeliveryOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&do, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Delivery order", id)
		}
		return nil, err
	}
	return &do, nil
}

// FindByNumber finds a delivery order by its document number
func (r *GormDeliveryOrderRepository) FindByNumber(ctx context.Context, number string) (*delivery.DeliveryOrder, error) {
	var do delivery.DeliveryOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&do, "no_do = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Delivery order", number)
		}
		return nil, err
	}
	return &do, nil
}

// FindAll returns all delivery orders with items preloaded
func (r *GormDeliveryOrderRepository) FindAll(ctx context.Context) ([]delivery.DeliveryOrder, error) {
	var dos []delivery.DeliveryOrder
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&dos).Error; err != nil {
		return nil, err
	}
	return dos, nil
}

// FindApprovedByMaterialRequest returns all approved delivery orders
// linked to the material request, items preloaded
func (r *GormDeliveryOrderRepository) FindApprovedByMaterialRequest(ctx context.Context, mrID uuid.UUID) ([]delivery.DeliveryOrder, error) {
	var dos []delivery.DeliveryOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("material_request_id = ? AND status = ?", mrID, delivery.StatusApproved).
		Find(&dos).Error; err != nil {
		return nil, err
	}
	return dos, nil
}

// LastNumber returns the number of the most recently created order, or
// empty when none exists
func (r *GormDeliveryOrderRepository) LastNumber(ctx context.Context) (string, error) {
	var do delivery.DeliveryOrder
	err := r.db.WithContext(ctx).Select("no_do").Order("created_at DESC").First(&do).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return do.Number, nil
}

// Save persists a delivery order and its items
func (r *GormDeliveryOrderRepository) Save(ctx context.Context, do *delivery.DeliveryOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(do).Error
}

// Delete removes a delivery order and its items
func (r *GormDeliveryOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&delivery.DeliveryOrderItem{}, "delivery_order_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&delivery.DeliveryOrder{}, "id = ?", id).Error
}

var _ delivery.DeliveryOrderRepository = (*GormDeliveryOrderRepository)(nil)
