package procurement_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventoryapp "github.com/erp/procurement/internal/application/inventory"
	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/catalog"
	"github.com/erp/procurement/internal/domain/identity"
	domaininventory "github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/infrastructure/persistence"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(persistence.Models()...))
	return db
}

// workflowFixture wires the procurement services against an in-memory
// database with a creator, four admins, a location, two items and three
// empty shelves.
type workflowFixture struct {
	db       *gorm.DB
	mrSvc    *procurementapp.MaterialRequestService
	poSvc    *procurementapp.PurchaseOrderService
	igrSvc   *procurementapp.ReceiptService
	creator  *identity.User
	admins   []*identity.User
	location *catalog.Location
	itemA    *catalog.Item
	itemB    *catalog.Item
	shelves  []*domaininventory.Shelf
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	db := newTestDB(t)
	scope := persistence.NewGormTransactionScope(db)

	f := &workflowFixture{
		db:     db,
		mrSvc:  procurementapp.NewMaterialRequestService(scope),
		poSvc:  procurementapp.NewPurchaseOrderService(scope, inventoryapp.NewShelfAllocator()),
		igrSvc: procurementapp.NewReceiptService(scope),
	}

	f.creator = seedUser(t, db, "creator@example.com", identity.RoleUser)
	for i := 0; i < 4; i++ {
		f.admins = append(f.admins, seedUser(t, db, fmt.Sprintf("admin%d@example.com", i+1), identity.RoleAdmin))
	}
	f.location = seedLocation(t, db, "Main Plant", "LOC-001")
	f.itemA = seedItem(t, db, "Bearing 6204", "ITM-001")
	f.itemB = seedItem(t, db, "Hydraulic Gasket", "ITM-002")
	f.shelves = seedShelves(t, db, 3)
	return f
}

func seedUser(t *testing.T, db *gorm.DB, email string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "$2a$10$fixedhashforseededusers", role)
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedLocation(t *testing.T, db *gorm.DB, name, code string) *catalog.Location {
	t.Helper()
	location, err := catalog.NewLocation(name, code)
	require.NoError(t, err)
	require.NoError(t, db.Create(location).Error)
	return location
}

func seedItem(t *testing.T, db *gorm.DB, name, code string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, code, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(item).Error)
	return item
}

// seedShelves creates one warehouse with n empty shelves whose creation
// timestamps are strictly increasing, so allocation order is
// deterministic.
func seedShelves(t *testing.T, db *gorm.DB, n int) []*domaininventory.Shelf {
	t.Helper()
	warehouse, err := domaininventory.NewWarehouse("Central Warehouse", "WH-001", "Jl. Industri 1")
	require.NoError(t, err)
	require.NoError(t, db.Create(warehouse).Error)

	base := time.Now().Add(-time.Hour)
	shelves := make([]*domaininventory.Shelf, 0, n)
	for i := 0; i < n; i++ {
		shelf, err := domaininventory.NewShelf("A", fmt.Sprintf("%02d", i+1), warehouse.ID)
		require.NoError(t, err)
		shelf.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(shelf).Error)
		shelves = append(shelves, shelf)
	}
	return shelves
}

func (f *workflowFixture) createRequest(t *testing.T, lines ...procurementapp.MaterialRequestLineRequest) *procurementapp.MaterialRequestResponse {
	t.Helper()
	resp, err := f.mrSvc.Create(context.Background(), f.creator.ID, procurementapp.CreateMaterialRequestRequest{
		LocationID: f.location.ID,
		Remarks:    "monthly restock",
		Items:      lines,
	})
	require.NoError(t, err)
	return resp
}

// createOrder builds a purchase order with one line per given material
// request item ID.
func (f *workflowFixture) createOrder(t *testing.T, mr *procurementapp.MaterialRequestResponse, itemIdx ...int) *procurementapp.PurchaseOrderResponse {
	t.Helper()
	lines := make([]procurementapp.PurchaseOrderLineRequest, 0, len(itemIdx))
	for _, idx := range itemIdx {
		lines = append(lines, procurementapp.PurchaseOrderLineRequest{
			MaterialRequestItemID: mr.Items[idx].ID,
			Supplier:              "PT Sumber Makmur",
			Quantity:              mr.Items[idx].Quantity,
		})
	}
	resp, err := f.poSvc.Create(context.Background(), f.creator.ID, procurementapp.CreatePurchaseOrderRequest{Items: lines})
	require.NoError(t, err)
	return resp
}

// approveToQuorum records approvals from all four seeded admins.
func (f *workflowFixture) approveToQuorum(t *testing.T, approve func(approver *identity.User) (*procurementapp.ApprovalResult, error)) *procurementapp.ApprovalResult {
	t.Helper()
	var last *procurementapp.ApprovalResult
	for _, admin := range f.admins {
		result, err := approve(admin)
		require.NoError(t, err)
		last = result
	}
	return last
}
