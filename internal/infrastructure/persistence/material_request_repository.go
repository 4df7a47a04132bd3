package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormMaterialRequestRepository implements MaterialRequestRepository
// using GORM
type GormMaterialRequestRepository struct {
	db *gorm.DB
}

// NewGormMaterialRequestRepository creates a new GormMaterialRequestRepository
func NewGormMaterialRequestRepository(db *gorm.DB) *GormMaterialRequestRepository {
	return &GormMaterialRequestRepository{db: db}
}

// FindByID finds a material request by its ID with items preloaded
func (r *GormMaterialRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.MaterialRequest, error) {
	var mr procurement.MaterialRequest
	if err := r.db.WithContext(ctx).Preload("Items").First(&mr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Material request", id)
		}
		return nil, err
	}
	return &mr, nil
}

// FindByNumber finds a material request by its document number
func (r *GormMaterialRequestRepository) FindByNumber(ctx context.Context, number string) (*procurement.MaterialRequest, error) {
	var mr procurement.MaterialRequest
	if err := r.db.WithContext(ctx).Preload("Items").First(&mr, "no_mr = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Material request", number)
		}
		return nil, err
	}
	return &mr, nil
}

// FindAll returns all material requests with items preloaded
func (r *GormMaterialRequestRepository) FindAll(ctx context.Context) ([]procurement.MaterialRequest, error) {
	var mrs []procurement.MaterialRequest
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&mrs).Error; err != nil {
		return nil, err
	}
	return mrs, nil
}

// FindByPurchaseOrder returns the requests linked to a purchase order
func (r *GormMaterialRequestRepository) FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) ([]procurement.MaterialRequest, error) {
	var mrs []procurement.MaterialRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("purchase_order_id = ?", poID).
		Find(&mrs).Error; err != nil {
		return nil, err
	}
	return mrs, nil
}

// LastNumber returns the number of the most recently created request, or
// empty when none exists
func (r *GormMaterialRequestRepository) LastNumber(ctx context.Context) (string, error) {
	var mr procurement.MaterialRequest
	err := r.db.WithContext(ctx).Select("no_mr").Order("created_at DESC").First(&mr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return mr.Number, nil
}

// Save persists a material request and its items
func (r *GormMaterialRequestRepository) Save(ctx context.Context, mr *procurement.MaterialRequest) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(mr).Error
}

// Delete removes a material request by ID
func (r *GormMaterialRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&procurement.MaterialRequest{}, "id = ?", id).Error
}

// FindItemByID finds a request line item by its ID
func (r *GormMaterialRequestRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*procurement.MaterialRequestItem, error) {
	var item procurement.MaterialRequestItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Material request item", id)
		}
		return nil, err
	}
	return &item, nil
}

// FindItemsByRequest returns the line items of a request
func (r *GormMaterialRequestRepository) FindItemsByRequest(ctx context.Context, requestID uuid.UUID) ([]procurement.MaterialRequestItem, error) {
	var items []procurement.MaterialRequestItem
	if err := r.db.WithContext(ctx).
		Where("material_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItem persists one request line item
func (r *GormMaterialRequestRepository) SaveItem(ctx context.Context, item *procurement.MaterialRequestItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItemsByRequest removes all line items of a request
func (r *GormMaterialRequestRepository) DeleteItemsByRequest(ctx context.Context, requestID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.MaterialRequestItem{}, "material_request_id = ?", requestID).Error
}

var _ procurement.MaterialRequestRepository = (*GormMaterialRequestRepository)(nil)
