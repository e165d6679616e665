package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vigia/internal/inventory/models"
	"vigia/pkg/platform/sentinel"
)

func newUnit(tower string, floor int, number string) *models.Unit {
	return &models.Unit{
		ID:        uuid.New(),
		Tower:     tower,
		Floor:     floor,
		Number:    number,
		CreatedAt: time.Now(),
	}
}

// TestConcurrentNaturalKeyUniqueness verifies that concurrent creates with the
// same natural key admit exactly one winner.
func TestConcurrentNaturalKeyUniqueness(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.CreateUnitIfKeyAvailable(ctx, newUnit("A", 5, "501"))
			switch {
			case err == nil:
				successCount.Add(1)
			case err == sentinel.ErrConflict:
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), successCount.Load())
	require.Equal(t, int32(goroutines-1), conflictCount.Load())
}

func TestNaturalKeyIsCaseInsensitive(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	require.NoError(t, store.CreateUnitIfKeyAvailable(ctx, newUnit("A", 5, "501")))
	err := store.CreateUnitIfKeyAvailable(ctx, newUnit("a", 5, "501"))
	require.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestCreateUnitItemChecksOwnerUnderLock(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	unit := newUnit("A", 5, "501")
	require.NoError(t, store.CreateUnitIfKeyAvailable(ctx, unit))
	require.NoError(t, store.DeleteUnitCascade(ctx, unit.ID))

	item := &models.UnitItem{ID: uuid.New(), UnitID: unit.ID, Name: "Kitchen", CreatedAt: time.Now()}
	require.ErrorIs(t, store.CreateUnitItem(ctx, item), sentinel.ErrNotFound)
}

func TestDeleteZoneCascadeRemovesItems(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	zone := &models.Zone{ID: uuid.New(), Name: "Terrace", CreatedAt: time.Now()}
	require.NoError(t, store.CreateZone(ctx, zone))
	item := &models.ZoneItem{ID: uuid.New(), ZoneID: zone.ID, Name: "Grill", CreatedAt: time.Now()}
	require.NoError(t, store.CreateZoneItem(ctx, item))

	require.NoError(t, store.DeleteZoneCascade(ctx, zone.ID))
	_, err := store.FindZoneItemByID(ctx, item.ID)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.ErrorIs(t, store.DeleteZoneCascade(ctx, zone.ID), sentinel.ErrNotFound)
}
