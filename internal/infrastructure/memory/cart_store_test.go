package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/ordering-service/internal/domain/order"
)

func line(t *testing.T, itemID int64, qty int) order.Line {
	t.Helper()
	l, err := order.NewLine(itemID, "Item", 500, qty, "")
	require.NoError(t, err)
	return l
}

func TestCartStore_IsolatesUsers(t *testing.T) {
	store := NewCartStore()

	store.Add("u1", line(t, 1, 1), 10)
	store.Add("u2", line(t, 7, 2), 20)

	s1 := store.Snapshot("u1")
	s2 := store.Snapshot("u2")

	assert.Equal(t, int64(10), s1.RestaurantID)
	assert.Equal(t, int64(20), s2.RestaurantID)
	assert.Equal(t, 1, s1.ItemCount())
	assert.Equal(t, 2, s2.ItemCount())
}

func TestCartStore_SnapshotOfUnknownUserIsEmpty(t *testing.T) {
	store := NewCartStore()

	snapshot := store.Snapshot("nobody")
	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, int64(0), snapshot.RestaurantID)
}

func TestCartStore_ConcurrentAddsMergeCompletely(t *testing.T) {
	store := NewCartStore()

	const workers = 20
	const addsPerWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerWorker; j++ {
				store.Add("u1", line(t, 1, 1), 10)
			}
		}()
	}
	wg.Wait()

	snapshot := store.Snapshot("u1")
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, workers*addsPerWorker, snapshot.Lines[0].Quantity)
}

func TestCartStore_ClearThenAddRebinds(t *testing.T) {
	store := NewCartStore()

	store.Add("u1", line(t, 1, 1), 10)
	store.Clear("u1")

	result := store.Add("u1", line(t, 7, 1), 20)
	assert.False(t, result.Conflict)
	assert.Equal(t, int64(20), result.Snapshot.RestaurantID)
}
