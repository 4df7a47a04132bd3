package procurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/identity"
	domaininventory "github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// receiptFixture drives the workflow up to an approved order with one
// receipt line.
func receiptFixture(t *testing.T, f *workflowFixture) procurementapp.ReceiptItemResponse {
	t.Helper()
	ctx := context.Background()

	mr := f.createRequest(t,
		procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 10},
	)
	po := f.createOrder(t, mr, 0)
	f.approveToQuorum(t, func(admin *identity.User) (*procurementapp.ApprovalResult, error) {
		return f.poSvc.Approve(ctx, po.ID, admin.ID)
	})

	receipts, err := f.igrSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	require.Len(t, receipts[0].Items, 1)
	return receipts[0].Items[0]
}

func (f *workflowFixture) shelfStock(t *testing.T, line procurementapp.ReceiptItemResponse) int {
	t.Helper()
	var shelf domaininventory.Shelf
	require.NoError(t, f.db.First(&shelf, "id = ?", line.ShelfID).Error)
	return shelf.StockQty
}

func TestReceiptService_UpdateItemStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("receiving a line adds its quantity to the shelf once", func(t *testing.T) {
		f := newWorkflowFixture(t)
		line := receiptFixture(t, f)
		require.Zero(t, f.shelfStock(t, line))

		err := f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusReceived)
		require.NoError(t, err)
		assert.Equal(t, 10, f.shelfStock(t, line))

		// Setting the same status again changes nothing.
		err = f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusReceived)
		require.NoError(t, err)
		assert.Equal(t, 10, f.shelfStock(t, line))
	})

	t.Run("rejected lines never add stock", func(t *testing.T) {
		f := newWorkflowFixture(t)
		line := receiptFixture(t, f)

		err := f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusRejected)
		require.NoError(t, err)
		assert.Zero(t, f.shelfStock(t, line))
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		f := newWorkflowFixture(t)
		line := receiptFixture(t, f)

		require.NoError(t, f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusRejected))

		err := f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusReceived)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
		assert.Zero(t, f.shelfStock(t, line))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newWorkflowFixture(t)
		line := receiptFixture(t, f)

		err := f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatus("misplaced"))
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}

func TestReceiptService_Delete(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	line := receiptFixture(t, f)

	receipts, err := f.igrSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	require.NoError(t, f.igrSvc.Delete(ctx, receipts[0].ID))

	receipts, err = f.igrSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, receipts)

	err = f.igrSvc.UpdateItemStatus(ctx, line.ID, procurement.ReceiptItemStatusReceived)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
}
