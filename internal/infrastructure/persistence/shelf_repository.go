package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormShelfRepository implements ShelfRepository using GORM
type GormShelfRepository struct {
	db *gorm.DB
}

// NewGormShelfRepository creates a new GormShelfRepository
func NewGormShelfRepository(db *gorm.DB) *GormShelfRepository {
	return &GormShelfRepository{db: db}
}

// FindByID finds a shelf by its ID
func (r *GormShelfRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Shelf, error) {
	var shelf inventory.Shelf
	if err := r.db.WithContext(ctx).First(&shelf, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Shelf", id)
		}
		return nil, err
	}
	return &shelf, nil
}

// FindByWarehouse returns all shelves in a warehouse
func (r *GormShelfRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.Shelf, error) {
	var shelves []inventory.Shelf
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at ASC").
		Find(&shelves).Error; err != nil {
		return nil, err
	}
	return shelves, nil
}

// FindBySlot finds the shelf at a location and position pair
func (r *GormShelfRepository) FindBySlot(ctx context.Context, location, position string) (*inventory.Shelf, error) {
	var shelf inventory.Shelf
	if err := r.db.WithContext(ctx).
		Where("location = ? AND position = ?", location, position).
		First(&shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shelf, nil
}

// FindAll returns all shelves
func (r *GormShelfRepository) FindAll(ctx context.Context) ([]inventory.Shelf, error) {
	var shelves []inventory.Shelf
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&shelves).Error; err != nil {
		return nil, err
	}
	return shelves, nil
}

// FindEarliestByItem returns the oldest shelf already holding the item,
// or nil when none exists
func (r *GormShelfRepository) FindEarliestByItem(ctx context.Context, itemID uuid.UUID) (*inventory.Shelf, error) {
	var shelf inventory.Shelf
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

// FindEarliestEmpty returns the oldest shelf with zero stock, or nil
// when none exists
func (r *GormShelfRepository) FindEarliestEmpty(ctx context.Context) (*inventory.Shelf, error) {
	var shelf inventory.Shelf
	err := r.db.WithContext(ctx).
		Where("stock_qty = 0").
		Order("created_at ASC").
		First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

// FindEarliest returns the oldest shelf of all, or nil when no shelf is
// defined
func (r *GormShelfRepository) FindEarliest(ctx context.Context) (*inventory.Shelf, error) {
	var shelf inventory.Shelf
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

// Save persists a shelf
func (r *GormShelfRepository) Save(ctx context.Context, shelf *inventory.Shelf) error {
	return r.db.WithContext(ctx).Save(shelf).Error
}

// Delete removes a shelf by ID
func (r *GormShelfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&inventory.Shelf{}, "id = ?", id).Error
}

var _ inventory.ShelfRepository = (*GormShelfRepository)(nil)
