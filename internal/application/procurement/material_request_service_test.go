package procurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

func TestMaterialRequestService_Create(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	t.Run("creates request with sequential number and pending lines", func(t *testing.T) {
		mr := f.createRequest(t,
			procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 10, Duration: "2 weeks"},
			procurementapp.MaterialRequestLineRequest{ItemID: f.itemB.ID, Quantity: 4},
		)

		assert.Equal(t, "MR-001", mr.Number)
		assert.Equal(t, "requested", mr.Status)
		assert.Equal(t, f.creator.ID, mr.CreatedByID)
		assert.Nil(t, mr.PurchaseOrderID)
		require.Len(t, mr.Items, 2)
		for _, item := range mr.Items {
			assert.Equal(t, "pending", item.Status)
		}

		second := f.createRequest(t,
			procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 1},
		)
		assert.Equal(t, "MR-002", second.Number)
	})

	t.Run("rejects unknown location", func(t *testing.T) {
		_, err := f.mrSvc.Create(ctx, f.creator.ID, procurementapp.CreateMaterialRequestRequest{
			LocationID: uuid.New(),
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemA.ID, Quantity: 1},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		_, err := f.mrSvc.Create(ctx, f.creator.ID, procurementapp.CreateMaterialRequestRequest{
			LocationID: f.location.ID,
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemA.ID, Quantity: 1},
				{ItemID: uuid.New(), Quantity: 2},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := f.mrSvc.Create(ctx, f.creator.ID, procurementapp.CreateMaterialRequestRequest{
			LocationID: f.location.ID,
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemA.ID, Quantity: 0},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}

func TestMaterialRequestService_Update(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	mr := f.createRequest(t,
		procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 10},
	)

	t.Run("replaces the whole item set", func(t *testing.T) {
		updated, err := f.mrSvc.Update(ctx, mr.ID, procurementapp.UpdateMaterialRequestRequest{
			Remarks: "rush order",
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemB.ID, Quantity: 3},
				{ItemID: f.itemA.ID, Quantity: 7},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, mr.Number, updated.Number)
		assert.Equal(t, "pending", updated.Status)
		assert.Equal(t, "rush order", updated.Remarks)
		require.Len(t, updated.Items, 2)
		for _, item := range updated.Items {
			assert.NotEqual(t, mr.Items[0].ID, item.ID)
			assert.Equal(t, "pending", item.Status)
		}

		fetched, err := f.mrSvc.Get(ctx, mr.ID)
		require.NoError(t, err)
		assert.Len(t, fetched.Items, 2)
	})

	t.Run("rejects empty item set", func(t *testing.T) {
		_, err := f.mrSvc.Update(ctx, mr.ID, procurementapp.UpdateMaterialRequestRequest{})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.mrSvc.Update(ctx, uuid.New(), procurementapp.UpdateMaterialRequestRequest{
			Items: []procurementapp.MaterialRequestLineRequest{
				{ItemID: f.itemA.ID, Quantity: 1},
			},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})
}

func TestMaterialRequestService_Delete(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	t.Run("deletes an unreferenced request", func(t *testing.T) {
		mr := f.createRequest(t,
			procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 2},
		)
		require.NoError(t, f.mrSvc.Delete(ctx, mr.ID))

		_, err := f.mrSvc.Get(ctx, mr.ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("refuses when referenced by a purchase order", func(t *testing.T) {
		mr := f.createRequest(t,
			procurementapp.MaterialRequestLineRequest{ItemID: f.itemA.ID, Quantity: 2},
		)
		f.createOrder(t, mr, 0)

		err := f.mrSvc.Delete(ctx, mr.ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)

		// Still fetchable after the refused delete.
		_, err = f.mrSvc.Get(ctx, mr.ID)
		require.NoError(t, err)
	})
}
