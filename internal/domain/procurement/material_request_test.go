package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/procurement/internal/domain/shared"
)

func validLines() []MaterialRequestLine {
	return []MaterialRequestLine{
		{ItemID: uuid.New(), Quantity: 5, Duration: "2 weeks"},
		{ItemID: uuid.New(), Quantity: 3, Duration: "1 month"},
	}
}

func TestNewMaterialRequest(t *testing.T) {
	mr, err := NewMaterialRequest("MR-001", uuid.New(), uuid.New(), "site work", validLines())
	require.NoError(t, err)

	assert.Equal(t, "MR-001", mr.Number)
	assert.Equal(t, MRStatusRequested, mr.Status)
	require.Len(t, mr.Items, 2)
	for _, item := range mr.Items {
		assert.Equal(t, ItemStatusPending, item.Status)
		assert.Equal(t, mr.ID, item.MaterialRequestID)
	}
	assert.Nil(t, mr.PurchaseOrderID)
}

func TestNewMaterialRequestValidation(t *testing.T) {
	locationID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name  string
		fn    func() (*MaterialRequest, error)
		field string
	}{
		{"empty number", func() (*MaterialRequest, error) {
			return NewMaterialRequest("", locationID, userID, "", validLines())
		}, "number"},
		{"nil location", func() (*MaterialRequest, error) {
			return NewMaterialRequest("MR-001", uuid.Nil, userID, "", validLines())
		}, "location"},
		{"nil creator", func() (*MaterialRequest, error) {
			return NewMaterialRequest("MR-001", locationID, uuid.Nil, "", validLines())
		}, "creator"},
		{"no lines", func() (*MaterialRequest, error) {
			return NewMaterialRequest("MR-001", locationID, userID, "", nil)
		}, "items"},
		{"zero quantity", func() (*MaterialRequest, error) {
			return NewMaterialRequest("MR-001", locationID, userID, "", []MaterialRequestLine{{ItemID: uuid.New(), Quantity: 0}})
		}, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeValidation, domainErr.Code)
		})
	}
}

func TestReplaceItemsRecomputesStatus(t *testing.T) {
	mr, err := NewMaterialRequest("MR-001", uuid.New(), uuid.New(), "", validLines())
	require.NoError(t, err)

	newLines := []MaterialRequestLine{{ItemID: uuid.New(), Quantity: 7}}
	require.NoError(t, mr.ReplaceItems(newLines))

	require.Len(t, mr.Items, 1)
	assert.Equal(t, MRStatusPending, mr.Status)
	assert.Equal(t, 7, mr.Items[0].Quantity)
}

func TestReplaceItemsRejectsEmptySet(t *testing.T) {
	mr, err := NewMaterialRequest("MR-001", uuid.New(), uuid.New(), "", validLines())
	require.NoError(t, err)

	err = mr.ReplaceItems(nil)
	require.Error(t, err)
	assert.Len(t, mr.Items, 2)
}

func TestLinkToPurchaseOrder(t *testing.T) {
	mr, err := NewMaterialRequest("MR-001", uuid.New(), uuid.New(), "", validLines())
	require.NoError(t, err)

	poID := uuid.New()
	mr.Items[0].Status = ItemStatusProses
	mr.Items[1].Status = ItemStatusProses
	mr.LinkToPurchaseOrder(poID)

	require.NotNil(t, mr.PurchaseOrderID)
	assert.Equal(t, poID, *mr.PurchaseOrderID)
	assert.Equal(t, MRStatusProses, mr.Status)
}

func TestUnlinkResetsToPending(t *testing.T) {
	mr, err := NewMaterialRequest("MR-001", uuid.New(), uuid.New(), "", validLines())
	require.NoError(t, err)

	mr.LinkToPurchaseOrder(uuid.New())
	mr.Unlink()

	assert.Nil(t, mr.PurchaseOrderID)
	assert.Equal(t, MRStatusPending, mr.Status)
}
