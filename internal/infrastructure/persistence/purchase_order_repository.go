package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID with items preloaded
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var po procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Purchase order", id)
		}
		return nil, err
	}
	return &po, nil
}

// FindByNumber finds a purchase order by its document number
func (r *GormPurchaseOrderRepository) FindByNumber(ctx context.Context, number string) (*procurement.PurchaseOrder, error) {
	var po procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&po, "no_po = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Purchase order", number)
		}
		return nil, err
	}
	return &po, nil
}

// FindAll returns all purchase orders with items preloaded
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context) ([]procurement.PurchaseOrder, error) {
	var pos []procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// FindByCreator returns the orders raised by one user
func (r *GormPurchaseOrderRepository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]procurement.PurchaseOrder, error) {
	var pos []procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_by_id = ?", userID).
		Order("created_at ASC").
		Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// LastNumber returns the number of the most recently created order, or
// empty when none exists
func (r *GormPurchaseOrderRepository) LastNumber(ctx context.Context) (string, error) {
	var po procurement.PurchaseOrder
	err := r.db.WithContext(ctx).Select("no_po").Order("created_at DESC").First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return po.Number, nil
}

// Save persists a purchase order without touching its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Items").Save(po).Error
}

// Delete removes a purchase order by ID
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&procurement.PurchaseOrder{}, "id = ?", id).Error
}

// FindItemByID finds an order line item by its ID
func (r *GormPurchaseOrderRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrderItem, error) {
	var item procurement.PurchaseOrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Purchase order item", id)
		}
		return nil, err
	}
	return &item, nil
}

// FindItemByRequestItem returns the line referencing the given material
// request item, or nil when none exists
func (r *GormPurchaseOrderRepository) FindItemByRequestItem(ctx context.Context, mrItemID uuid.UUID) (*procurement.PurchaseOrderItem, error) {
	var item procurement.PurchaseOrderItem
	err := r.db.WithContext(ctx).First(&item, "material_request_item_id = ?", mrItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists one order line item
func (r *GormPurchaseOrderRepository) SaveItem(ctx context.Context, item *procurement.PurchaseOrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes one order line item by ID
func (r *GormPurchaseOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&procurement.PurchaseOrderItem{}, "id = ?", id).Error
}

// DeleteItemsByOrder removes all line items of an order
func (r *GormPurchaseOrderRepository) DeleteItemsByOrder(ctx context.Context, poID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.PurchaseOrderItem{}, "purchase_order_id = ?", poID).Error
}

var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
