package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID with items preloaded
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.IncomingGoodReceipt, error) {
	var igr procurement.IncomingGoodReceipt
	if err := r.db.WithContext(ctx).Preload("Items").First(&igr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Incoming good receipt", id)
		}
		return nil, err
	}
	return &igr, nil
}

// FindByPurchaseOrder returns the receipt for a purchase order, or nil
// when receiving has not started
func (r *GormReceiptRepository) FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) (*procurement.IncomingGoodReceipt, error) {
	var igr procurement.IncomingGoodReceipt
	err := r.db.WithContext(ctx).Preload("Items").First(&igr, "purchase_order_id = ?", poID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &igr, nil
}

// FindAll returns all receipts with items preloaded
func (r *GormReceiptRepository) FindAll(ctx context.Context) ([]procurement.IncomingGoodReceipt, error) {
	var igrs []procurement.IncomingGoodReceipt
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&igrs).Error; err != nil {
		return nil, err
	}
	return igrs, nil
}

// LastNumber returns the number of the most recently created receipt, or
// empty when none exists
func (r *GormReceiptRepository) LastNumber(ctx context.Context) (string, error) {
	var igr procurement.IncomingGoodReceipt
	err := r.db.WithContext(ctx).Select("no_igr").Order("created_at DESC").First(&igr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return igr.Number, nil
}

// Save persists a receipt and its items
func (r *GormReceiptRepository) Save(ctx context.Context, igr *procurement.IncomingGoodReceipt) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(igr).Error
}

// Delete removes a receipt by ID
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&procurement.IncomingGoodReceipt{}, "id = ?", id).Error
}

// FindItemByID finds a receipt line item by its ID
func (r *GormReceiptRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*procurement.IncomingGoodReceiptItem, error) {
	var item procurement.IncomingGoodReceiptItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Incoming good receipt item", id)
		}
		return nil, err
	}
	return &item, nil
}

// SaveItem persists one receipt line item
func (r *GormReceiptRepository) SaveItem(ctx context.Context, item *procurement.IncomingGoodReceiptItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItemsByReceipt removes all line items of a receipt
func (r *GormReceiptRepository) DeleteItemsByReceipt(ctx context.Context, receiptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.IncomingGoodReceiptItem{}, "incoming_good_receipt_id = ?", receiptID).Error
}

var _ procurement.ReceiptRepository = (*GormReceiptRepository)(nil)
