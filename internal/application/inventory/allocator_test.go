package inventory_test

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

	inventoryapp "github.com/erp/procurement/internal/application/inventory"
	"github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/shared"
	"github.com/erp/procurement/internal/infrastructure/persistence"
)

func newAllocatorDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&inventory.Warehouse{}, &inventory.Shelf{}))
	return db
}

// seedShelfRow creates one shelf with a fixed creation time so the
// earliest-first ordering under test is deterministic.
func seedShelfRow(t *testing.T, db *gorm.DB, warehouseID uuid.UUID, position string, createdAt time.Time, itemID *uuid.UUID, stock int) *inventory.Shelf {
	t.Helper()
	shelf, err := inventory.NewShelf("A", position, warehouseID)
	require.NoError(t, err)
	shelf.CreatedAt = createdAt
	shelf.ItemID = itemID
	shelf.StockQty = stock
	require.NoError(t, db.Create(shelf).Error)
	return shelf
}

func TestShelfAllocator_Allocate(t *testing.T) {
	ctx := context.Background()
	allocator := inventoryapp.NewShelfAllocator()

	setup := func(t *testing.T) (*gorm.DB, *persistence.GormShelfRepository, uuid.UUID) {
		db := newAllocatorDB(t)
		warehouse, err := inventory.NewWarehouse("Central Warehouse", "WH-001", "")
		require.NoError(t, err)
		require.NoError(t, db.Create(warehouse).Error)
		return db, persistence.NewGormShelfRepository(db), warehouse.ID
	}

	base := time.Now().Add(-time.Hour)
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Minute) }

	t.Run("prefers the earliest shelf already holding the item", func(t *testing.T) {
		db, repo, whID := setup(t)
		itemID := uuid.New()
		seedShelfRow(t, db, whID, "01", at(0), nil, 0)
		seedShelfRow(t, db, whID, "02", at(1), &itemID, 5)
		seedShelfRow(t, db, whID, "03", at(2), &itemID, 3)
		// The oldest of the holders wins, not the emptiest.
		seedShelfRow(t, db, whID, "04", at(3), &itemID, 0)

		shelf, err := allocator.Allocate(ctx, repo, itemID)
		require.NoError(t, err)
		assert.Equal(t, "02", shelf.Position)
	})

	t.Run("claims the earliest empty shelf when no shelf holds the item", func(t *testing.T) {
		db, repo, whID := setup(t)
		otherItem := uuid.New()
		seedShelfRow(t, db, whID, "01", at(0), &otherItem, 8)
		empty := seedShelfRow(t, db, whID, "02", at(1), nil, 0)
		seedShelfRow(t, db, whID, "03", at(2), nil, 0)

		itemID := uuid.New()
		shelf, err := allocator.Allocate(ctx, repo, itemID)
		require.NoError(t, err)
		assert.Equal(t, empty.ID, shelf.ID)
		require.NotNil(t, shelf.ItemID)
		assert.Equal(t, itemID, *shelf.ItemID)

		// The claim is persisted, so a second allocation of the same
		// item lands on the same shelf via the holder path.
		again, err := allocator.Allocate(ctx, repo, itemID)
		require.NoError(t, err)
		assert.Equal(t, empty.ID, again.ID)
	})

	t.Run("falls back to the earliest shelf of all when none is empty", func(t *testing.T) {
		db, repo, whID := setup(t)
		otherItem := uuid.New()
		oldest := seedShelfRow(t, db, whID, "01", at(0), &otherItem, 8)
		seedShelfRow(t, db, whID, "02", at(1), &otherItem, 2)

		shelf, err := allocator.Allocate(ctx, repo, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, oldest.ID, shelf.ID)
	})

	t.Run("fails only when no shelf exists", func(t *testing.T) {
		_, repo, _ := setup(t)

		_, err := allocator.Allocate(ctx, repo, uuid.New())
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeDependency, domainErr.Code)
	})

	t.Run("empty claimed shelves beat older occupied ones", func(t *testing.T) {
		db, repo, whID := setup(t)
		otherItem := uuid.New()
		seedShelfRow(t, db, whID, "01", at(0), &otherItem, 8)
		// Claimed for another item but drained back to zero.
		drained := seedShelfRow(t, db, whID, "02", at(1), &otherItem, 0)

		itemID := uuid.New()
		shelf, err := allocator.Allocate(ctx, repo, itemID)
		require.NoError(t, err)
		require.Equal(t, drained.ID, shelf.ID)
		require.NotNil(t, shelf.ItemID)
		assert.Equal(t, itemID, *shelf.ItemID)
	})
}

func TestShelfAllocator_SpreadsDistinctItems(t *testing.T) {
	ctx := context.Background()
	allocator := inventoryapp.NewShelfAllocator()
	db := newAllocatorDB(t)

	warehouse, err := inventory.NewWarehouse("Central Warehouse", "WH-001", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(warehouse).Error)
	repo := persistence.NewGormShelfRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedShelfRow(t, db, warehouse.ID, fmt.Sprintf("%02d", i+1), base.Add(time.Duration(i)*time.Minute), nil, 0)
	}

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 3; i++ {
		shelf, err := allocator.Allocate(ctx, repo, uuid.New())
		require.NoError(t, err)
		assert.False(t, seen[shelf.ID], "each new item should claim its own shelf")
		seen[shelf.ID] = true
	}
}
