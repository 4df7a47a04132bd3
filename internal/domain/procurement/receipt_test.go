package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/procurement/internal/domain/shared"
)

func TestReceiptItemChangeStatus(t *testing.T) {
	t.Run("pending to received", func(t *testing.T) {
		item := IncomingGoodReceiptItem{Status: ReceiptItemStatusPending}
		changed, err := item.ChangeStatus(ReceiptItemStatusReceived)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, ReceiptItemStatusReceived, item.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		item := IncomingGoodReceiptItem{Status: ReceiptItemStatusReceived}
		changed, err := item.ChangeStatus(ReceiptItemStatusReceived)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		item := IncomingGoodReceiptItem{Status: ReceiptItemStatusRejected}
		changed, err := item.ChangeStatus(ReceiptItemStatusReceived)
		require.Error(t, err)
		assert.False(t, changed)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
		assert.Equal(t, ReceiptItemStatusRejected, item.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		item := IncomingGoodReceiptItem{Status: ReceiptItemStatusPending}
		_, err := item.ChangeStatus("shipped")
		require.Error(t, err)
	})
}

func TestNewReceiptStampsReceivedDate(t *testing.T) {
	igr, err := NewIncomingGoodReceipt("IGR-001", uuid.New())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), igr.ReceivedDate, time.Minute)
}

func TestReceiptAddItem(t *testing.T) {
	igr, err := NewIncomingGoodReceipt("IGR-001", uuid.New())
	require.NoError(t, err)

	require.NoError(t, igr.AddItem(uuid.New(), uuid.New(), uuid.New(), 5))
	require.Len(t, igr.Items, 1)
	assert.Equal(t, ReceiptItemStatusPending, igr.Items[0].Status)
	assert.Equal(t, igr.ID, igr.Items[0].IncomingGoodReceiptID)

	err = igr.AddItem(uuid.Nil, uuid.New(), uuid.New(), 5)
	require.Error(t, err)

	err = igr.AddItem(uuid.New(), uuid.New(), uuid.New(), 0)
	require.Error(t, err)
}
