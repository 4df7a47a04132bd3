package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	deliveryapp "github.com/erp/procurement/internal/application/delivery"
	inventoryapp "github.com/erp/procurement/internal/application/inventory"
	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/identity"
	domaininventory "github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
	"github.com/erp/procurement/internal/infrastructure/persistence"
)

// deliveryFixture wires the delivery service together with the
// procurement services needed to bring request lines onto an order.
type deliveryFixture struct {
	db       *gorm.DB
	mrSvc    *procurementapp.MaterialRequestService
	poSvc    *procurementapp.PurchaseOrderService
	doSvc    *deliveryapp.DeliveryOrderService
	creator  *identity.User
	admins   []*identity.User
	location *catalog.Location
	itemA    *catalog.Item
	itemB    *catalog.Item
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(persistence.Models()...))

	scope := persistence.NewGormTransactionScope(db)
	f := &deliveryFixture{
		db:    db,
		mrSvc: procurementapp.NewMaterialRequestService(scope),
		poSvc: procurementapp.NewPurchaseOrderService(scope, inventoryapp.NewShelfAllocator()),
		doSvc: deliveryapp.NewDeliveryOrderService(scope),
	}

	creator, err := identity.NewUser("creator@example.com", "$2a$10$fixedhashforseededusers", identity.RoleUser)
	require.NoError(t, err)
	require.NoError(t, db.Create(creator).Error)
	f.creator = creator

	for i := 0; i < 4; i++ {
		admin, err := identity.NewUser(fmt.Sprintf("admin%d@example.com", i+1), "$2a$10$fixedhashforseededusers", identity.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, db.Create(admin).Error)
		f.admins = append(f.admins, admin)
	}

	location, err := catalog.NewLocation("Main Plant", "LOC-001")
	require.NoError(t, err)
	require.NoError(t, db.Create(location).Error)

	f.itemA = seedDeliveryItem(t, db, "Bearing 6204", "ITM-001")
	f.itemB = seedDeliveryItem(t, db, "Hydraulic Gasket", "ITM-002")

	warehouse, err := domaininventory.NewWarehouse("Central Warehouse", "WH-001", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(warehouse).Error)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		shelf, err := domaininventory.NewShelf("A", fmt.Sprintf("%02d", i+1), warehouse.ID)
		require.NoError(t, err)
		shelf.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(shelf).Error)
	}

	f.location = location
	return f
}

func seedDeliveryItem(t *testing.T, db *gorm.DB, name, code string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, code, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(item).Error)
	return item
}

// procuredRequest creates a two-line request and pulls every line onto a
// purchase order.
func (f *deliveryFixture) procuredRequest(t *testing.T) *procurementapp.MaterialRequestResponse {
	t.Helper()
	ctx := context.Background()

	mr, err := f.mrSvc.Create(ctx, f.creator.ID, procurementapp.CreateMaterialRequestRequest{
		LocationID: f.location.ID,
		Items: []procurementapp.MaterialRequestLineRequest{
			{ItemID: f.itemA.ID, Quantity: 10},
			{ItemID: f.itemB.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	lines := make([]procurementapp.PurchaseOrderLineRequest, 0, len(mr.Items))
	for _, item := range mr.Items {
		lines = append(lines, procurementapp.PurchaseOrderLineRequest{
			MaterialRequestItemID: item.ID,
			Supplier:              "PT Sumber Makmur",
			Quantity:              item.Quantity,
		})
	}
	_, err = f.poSvc.Create(ctx, f.creator.ID, procurementapp.CreatePurchaseOrderRequest{Items: lines})
	require.NoError(t, err)
	return mr
}

func (f *deliveryFixture) approveToQuorum(t *testing.T, doID uuid.UUID) *deliveryapp.ApprovalResult {
	t.Helper()
	ctx := context.Background()
	var last *deliveryapp.ApprovalResult
	for _, admin := range f.admins {
		result, err := f.doSvc.Approve(ctx, doID, admin.ID)
		require.NoError(t, err)
		last = result
	}
	return last
}

func TestDeliveryOrderService_Create(t *testing.T) {
	f := newDeliveryFixture(t)
	ctx := context.Background()

	t.Run("rejects lines that were never procured", func(t *testing.T) {
		mr, err := f.mrSvc.Create(ctx, f.creator.ID, procurementapp.CreateMaterialRequestRequest{
			LocationID: f.location.ID,
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemA.ID, Quantity: 2},
			},
		})
		require.NoError(t, err)

		_, err = f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 2},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
		assert.Contains(t, domainErr.Message, mr.Items[0].ID.String())
	})

	t.Run("creates a pending order over procured lines", func(t *testing.T) {
		mr := f.procuredRequest(t)

		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Remarks:           "first batch",
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 10},
				{MaterialRequestItemID: mr.Items[1].ID, Quantity: 4},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "DO-001", do.Number)
		assert.Equal(t, "pending", do.Status)
		assert.Equal(t, mr.ID, do.MaterialRequestID)
		assert.Len(t, do.Items, 2)
		assert.Zero(t, do.Approvals)
	})

	t.Run("rejects lines of another request", func(t *testing.T) {
		mr := f.procuredRequest(t)

		_, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: uuid.New(), Quantity: 1},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})

	t.Run("rejects cancelled requests", func(t *testing.T) {
		mr := f.procuredRequest(t)
		require.NoError(t, f.db.Model(&procurement.MaterialRequest{}).
			Where("id = ?", mr.ID).
			Update("status", procurement.MRStatusCancelled).Error)

		_, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 1},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})
}

func TestDeliveryOrderService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("full coverage marks the request done", func(t *testing.T) {
		f := newDeliveryFixture(t)
		mr := f.procuredRequest(t)

		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 10},
				{MaterialRequestItemID: mr.Items[1].ID, Quantity: 4},
			},
		})
		require.NoError(t, err)

		result := f.approveToQuorum(t, do.ID)
		assert.Equal(t, int64(4), result.Approvals)
		assert.True(t, result.QuorumReached)

		approved, err := f.doSvc.Get(ctx, do.ID)
		require.NoError(t, err)
		assert.Equal(t, "approved", approved.Status)

		request, err := f.mrSvc.Get(ctx, mr.ID)
		require.NoError(t, err)
		assert.Equal(t, "done", request.Status)
	})

	t.Run("partial coverage marks the request partial_done", func(t *testing.T) {
		f := newDeliveryFixture(t)
		mr := f.procuredRequest(t)

		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 10},
			},
		})
		require.NoError(t, err)

		f.approveToQuorum(t, do.ID)

		request, err := f.mrSvc.Get(ctx, mr.ID)
		require.NoError(t, err)
		assert.Equal(t, "partial_done", request.Status)
	})

	t.Run("duplicate approvals and non-admins are rejected", func(t *testing.T) {
		f := newDeliveryFixture(t)
		mr := f.procuredRequest(t)

		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 10},
			},
		})
		require.NoError(t, err)

		_, err = f.doSvc.Approve(ctx, do.ID, f.admins[0].ID)
		require.NoError(t, err)

		approvals, err := f.doSvc.Approvals(ctx, do.ID)
		require.NoError(t, err)
		assert.Equal(t, "partially_approved", approvals.Status)
		assert.Equal(t, int64(3), approvals.Remaining)
		require.Len(t, approvals.Approvals, 1)
		assert.Equal(t, f.admins[0].ID, approvals.Approvals[0].UserID)
		assert.Equal(t, 1, approvals.Approvals[0].Sequence)

		_, err = f.doSvc.Approve(ctx, do.ID, f.admins[0].ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeAlreadyApproved, domainErr.Code)

		_, err = f.doSvc.Approve(ctx, do.ID, f.creator.ID)
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeForbidden, domainErr.Code)
	})
}

func TestDeliveryOrderService_Delete(t *testing.T) {
	f := newDeliveryFixture(t)
	ctx := context.Background()
	mr := f.procuredRequest(t)

	t.Run("pending orders are deletable", func(t *testing.T) {
		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[0].ID, Quantity: 10},
			},
		})
		require.NoError(t, err)

		require.NoError(t, f.doSvc.Delete(ctx, do.ID))
		_, err = f.doSvc.Get(ctx, do.ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("approved orders are not", func(t *testing.T) {
		do, err := f.doSvc.Create(ctx, deliveryapp.CreateDeliveryOrderRequest{
			MaterialRequestID: mr.ID,
			Items: []deliveryapp.DeliveryOrderLineRequest{
				{MaterialRequestItemID: mr.Items[1].ID, Quantity: 4},
			},
		})
		require.NoError(t, err)

		f.approveToQuorum(t, do.ID)

		err = f.doSvc.Delete(ctx, do.ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})
}
