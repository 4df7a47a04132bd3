package persistence

import (
	"context"

	"gorm.io/gorm"

	appprocurement "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/delivery"
	"github.com/erp/procurement/internal/domain/identity"
	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/procurement"
)

// GormTransactionScope implements the workflow transaction scope using
// GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// MaterialRequestRepo returns the material request repository scoped to the current transaction
func (r *gormTransactionalRepositories) MaterialRequestRepo() procurement.MaterialRequestRepository {
	return NewGormMaterialRequestRepository(r.tx)
}

// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
func (r *gormTransactionalRepositories) PurchaseOrderRepo() procurement.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// ReceiptRepo returns the receipt repository scoped to the current transaction
func (r *gormTransactionalRepositories) ReceiptRepo() procurement.ReceiptRepository {
	return NewGormReceiptRepository(r.tx)
}

// ApprovalRepo returns the approval repository scoped to the current transaction
func (r *gormTransactionalRepositories) ApprovalRepo() procurement.ApprovalRepository {
	return NewGormApprovalRepository(r.tx)
}

// DeliveryOrderRepo returns the delivery order repository scoped to the current transaction
func (r *gormTransactionalRepositories) DeliveryOrderRepo() delivery.DeliveryOrderRepository {
	return NewGormDeliveryOrderRepository(r.tx)
}

// ShelfRepo returns the shelf repository scoped to the current transaction
func (r *gormTransactionalRepositories) ShelfRepo() inventory.ShelfRepository {
	return NewGormShelfRepository(r.tx)
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// ItemRepo returns the item repository scoped to the current transaction
func (r *gormTransactionalRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// LocationRepo returns the location repository scoped to the current transaction
func (r *gormTransactionalRepositories) LocationRepo() catalog.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

var _ appprocurement.TransactionScope = (*GormTransactionScope)(nil)
var _ appprocurement.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
