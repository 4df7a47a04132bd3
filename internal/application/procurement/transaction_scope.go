package procurement

import (
	"context"

	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/delivery"
	"github.com/erp/procurement/internal/domain/identity"
	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/procurement"
)

// TransactionScope provides transactional access to the repositories the
// workflow touches. Every multi-row effect of the workflow (request
// creation, order diffing, approval side effects, receipt confirmation)
// runs inside one Execute call so partial writes never survive a failure.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all workflow repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// MaterialRequestRepo returns the material request repository scoped to the current transaction
	MaterialRequestRepo() procurement.MaterialRequestRepository
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() procurement.PurchaseOrderRepository
	// ReceiptRepo returns the incoming good receipt repository scoped to the current transaction
	ReceiptRepo() procurement.ReceiptRepository
	// ApprovalRepo returns the approval repository scoped to the current transaction
	ApprovalRepo() procurement.ApprovalRepository
	// DeliveryOrderRepo returns the delivery order repository scoped to the current transaction
	DeliveryOrderRepo() delivery.DeliveryOrderRepository
	// ShelfRepo returns the shelf repository scoped to the current transaction
	ShelfRepo() inventory.ShelfRepository
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() catalog.ItemRepository
	// LocationRepo returns the location repository scoped to the current transaction
	LocationRepo() catalog.LocationRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Useful in tests exercising service logic
// with mocks.
type NoOpTransactionScope struct {
	MRRepo       procurement.MaterialRequestRepository
	PORepo       procurement.PurchaseOrderRepository
	IGRRepo      procurement.ReceiptRepository
	ApprovalsRep procurement.ApprovalRepository
	DORepo       delivery.DeliveryOrderRepository
	Shelves      inventory.ShelfRepository
	Users        identity.UserRepository
	Items        catalog.ItemRepository
	Locations    catalog.LocationRepository
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MaterialRequestRepo returns the material request repository.
func (s *NoOpTransactionScope) MaterialRequestRepo() procurement.MaterialRequestRepository {
	return s.MRRepo
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() procurement.PurchaseOrderRepository {
	return s.PORepo
}

// ReceiptRepo returns the incoming good receipt repository.
func (s *NoOpTransactionScope) ReceiptRepo() procurement.ReceiptRepository {
	return s.IGRRepo
}

// ApprovalRepo returns the approval repository.
func (s *NoOpTransactionScope) ApprovalRepo() procurement.ApprovalRepository {
	return s.ApprovalsRep
}

// DeliveryOrderRepo returns the delivery order repository.
func (s *NoOpTransactionScope) DeliveryOrderRepo() delivery.DeliveryOrderRepository {
	return s.DORepo
}

// ShelfRepo returns the shelf repository.
func (s *NoOpTransactionScope) ShelfRepo() inventory.ShelfRepository {
	return s.Shelves
}

// UserRepo returns the user repository.
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.Users
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() catalog.ItemRepository {
	return s.Items
}

// LocationRepo returns the location repository.
func (s *NoOpTransactionScope) LocationRepo() catalog.LocationRepository {
	return s.Locations
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
