package warehouse_test

import (
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsobcaldas/storage-control/internal/model"
	"github.com/tarsobcaldas/storage-control/internal/warehouse"
)

func newProduct(quality model.Quality) *model.Product {
	return &model.Product{
		ID:         gofakeit.UUID(),
		Name:       gofakeit.ProductName(),
		PriceCents: int64(gofakeit.Number(1, 10_000)),
		Quality:    quality,
	}
}

func futureDate(days int) *time.Time {
	d := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func TestContiguousFillsFromTheFirstZone(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	apple := newProduct(model.Normal())

	placed, err := w.Restock(apple, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, 300, placed)
	assert.Equal(t, 180, w.AvailableSpace)

	m := w.FlatMap()
	assert.Equal(t, strings.Repeat("1", 300), m[:300])
	assert.Equal(t, strings.Repeat("0", 180), m[300:])

	first := w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 1})
	require.NotNil(t, first)
	assert.Equal(t, apple.ID, first.ProductID)
}

func TestContiguousOversizedSpans(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	melon := newProduct(model.Oversized(3))

	placed, err := w.Restock(melon, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, placed)
	assert.Equal(t, 480-300, w.AvailableSpace)
	assert.Len(t, w.ItemsWithID(melon.ID), 100)

	// Each level hosts three 3-zone spans; the tenth zone stays vacant.
	assert.Equal(t, "1111111110", w.FlatMap()[:10])

	start := w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 1})
	interior := w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 2})
	require.NotNil(t, start)
	require.NotNil(t, interior)
	assert.Same(t, start, interior)
}

func TestContiguousRefusesFragmentedSpace(t *testing.T) {
	t.Parallel()

	w := warehouse.New(1, 1, 1, 10)
	apple := newProduct(model.Normal())

	_, err := w.Restock(apple, 4, nil)
	require.NoError(t, err)

	// Free up a hole in the middle: 1011 000000 -> no run of 7.
	_, err = w.RemoveAt(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 2})
	require.NoError(t, err)

	placed, err := w.Restock(apple, 7, nil)
	assert.ErrorIs(t, err, model.ErrNoContiguousSpace)
	assert.Zero(t, placed)

	placed, err = w.Restock(apple, 8, nil)
	assert.ErrorIs(t, err, model.ErrInsufficientSpace)
	assert.Zero(t, placed)
}

func TestRoundRobinContinuesAfterLastOccupiedZone(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10, warehouse.WithStrategy(warehouse.StrategyRoundRobin))
	apple := newProduct(model.Normal())
	pear := newProduct(model.Normal())

	_, err := w.Restock(apple, 5, nil)
	require.NoError(t, err)

	_, err = w.Restock(pear, 3, nil)
	require.NoError(t, err)

	// Filling resumes right after the last occupied zone.
	for zone := 6; zone <= 8; zone++ {
		item := w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: zone})
		require.NotNil(t, item, "zone %d", zone)
		assert.Equal(t, pear.ID, item.ProductID)
	}
	assert.Nil(t, w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 9}))
}

func TestRoundRobinAtWarehouseEnd(t *testing.T) {
	t.Parallel()

	w := warehouse.New(1, 1, 1, 10, warehouse.WithStrategy(warehouse.StrategyRoundRobin))
	apple := newProduct(model.Normal())

	_, err := w.Restock(apple, 10, nil)
	require.NoError(t, err)
	_, err = w.RemoveAt(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 3})
	require.NoError(t, err)

	// One zone is free, but it lies before the continuation point.
	placed, err := w.Restock(apple, 1, nil)
	assert.ErrorIs(t, err, model.ErrEndOfWarehouse)
	assert.Zero(t, placed)
}

func TestClosestToStartPrefersLowDiagonals(t *testing.T) {
	t.Parallel()

	w := warehouse.New(3, 3, 2, 2, warehouse.WithStrategy(warehouse.StrategyClosestToStart))
	apple := newProduct(model.Normal())

	// Shelf (1,1) holds 4 zones; the fifth unit spills onto the next
	// diagonal, row 1 before row 2.
	placed, err := w.Restock(apple, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, placed)

	for zone := 1; zone <= 2; zone++ {
		assert.NotNil(t, w.Item(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: zone}))
		assert.NotNil(t, w.Item(model.Placement{Row: 1, Shelf: 1, Level: 2, Zone: zone}))
	}
	assert.NotNil(t, w.Item(model.Placement{Row: 1, Shelf: 2, Level: 1, Zone: 1}))
	assert.Nil(t, w.Item(model.Placement{Row: 2, Shelf: 1, Level: 1, Zone: 1}))
}

func TestClosestToStartRunsDry(t *testing.T) {
	t.Parallel()

	w := warehouse.New(1, 1, 1, 4, warehouse.WithStrategy(warehouse.StrategyClosestToStart))
	apple := newProduct(model.Normal())

	placed, err := w.Restock(apple, 6, nil)
	assert.ErrorIs(t, err, model.ErrInsufficientSpace)
	assert.Equal(t, 4, placed)
	assert.True(t, w.IsFull())
}

func TestFragileCeilingIsHonored(t *testing.T) {
	t.Parallel()

	strategies := []warehouse.Strategy{
		warehouse.StrategyContiguous,
		warehouse.StrategyRoundRobin,
		warehouse.StrategyClosestToStart,
	}
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			t.Parallel()

			w := warehouse.New(2, 6, 4, 10, warehouse.WithStrategy(strategy))
			banana := newProduct(model.Fragile(3))

			placed, err := w.Restock(banana, 100, futureDate(7))
			require.NoError(t, err)
			require.Equal(t, 100, placed)

			for _, item := range w.ItemsWithID(banana.ID) {
				assert.LessOrEqual(t, item.Placement.Level, 3, "item at %s", item.Placement)
			}
		})
	}
}

func TestFragileRequiresExpiry(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	banana := newProduct(model.Fragile(3))

	placed, err := w.Restock(banana, 5, nil)
	assert.ErrorIs(t, err, model.ErrFragileWithoutExpiry)
	assert.Zero(t, placed)
	assert.True(t, w.IsEmpty())
	assert.Equal(t, 480, w.AvailableSpace)
}

func TestRemoveStockTakesEarliestExpiryFirst(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	banana := newProduct(model.Fragile(3))

	_, err := w.Restock(banana, 50, futureDate(30))
	require.NoError(t, err)
	_, err = w.Restock(banana, 50, futureDate(7))
	require.NoError(t, err)

	taken, err := w.RemoveStock(banana.ID, 50)
	require.NoError(t, err)
	require.Len(t, taken, 50)
	for _, item := range taken {
		require.NotNil(t, item.ExpiryDate)
		assert.WithinDuration(t, *futureDate(7), *item.ExpiryDate, time.Minute)
	}

	assert.Len(t, w.ItemsWithID(banana.ID), 50)
	assert.Equal(t, 480-50, w.AvailableSpace)
}

func TestRemoveStockRefusesOverdraw(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	apple := newProduct(model.Normal())

	_, err := w.Restock(apple, 3, nil)
	require.NoError(t, err)

	_, err = w.RemoveStock(apple.ID, 4)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Len(t, w.ItemsWithID(apple.ID), 3)
}

func TestRemoveAtSpanFragments(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	melon := newProduct(model.Oversized(3))

	_, err := w.Restock(melon, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 477, w.AvailableSpace)

	_, err = w.RemoveAt(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 2})
	assert.ErrorIs(t, err, model.ErrCannotRemovePart)

	item, err := w.RemoveAt(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 1})
	require.NoError(t, err)
	assert.Equal(t, melon.ID, item.ProductID)
	assert.Equal(t, 480, w.AvailableSpace)
	assert.True(t, w.IsEmpty())
}

func TestRemoveAtEmptyZone(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)

	_, err := w.RemoveAt(model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 1})
	assert.ErrorIs(t, err, model.ErrZoneEmpty)

	_, err = w.RemoveAt(model.Placement{Row: 9, Shelf: 1, Level: 1, Zone: 1})
	assert.ErrorIs(t, err, model.ErrRowNotFound)
}

func TestSpaceAccountingStaysConsistent(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	apple := newProduct(model.Normal())
	melon := newProduct(model.Oversized(3))

	_, err := w.Restock(apple, 25, nil)
	require.NoError(t, err)
	_, err = w.Restock(melon, 10, nil)
	require.NoError(t, err)
	_, err = w.RemoveStock(apple.ID, 5)
	require.NoError(t, err)
	_, err = w.RemoveStock(melon.ID, 4)
	require.NoError(t, err)

	occupied := strings.Count(w.FlatMap(), "1")
	assert.Equal(t, w.Capacity()-occupied, w.AvailableSpace)
	assert.Equal(t, 20+6*3, occupied)
}

func TestExpiryQueries(t *testing.T) {
	t.Parallel()

	w := warehouse.New(2, 6, 4, 10)
	banana := newProduct(model.Fragile(3))

	past := time.Now().Add(-48 * time.Hour)
	_, err := w.Restock(banana, 2, &past)
	require.NoError(t, err)
	_, err = w.Restock(banana, 3, futureDate(2))
	require.NoError(t, err)
	_, err = w.Restock(banana, 4, futureDate(60))
	require.NoError(t, err)

	now := time.Now()
	assert.Len(t, w.ExpiredItems(now), 2)
	assert.Len(t, w.ExpiringItems(now, 7*24*time.Hour), 3)
	assert.Len(t, w.ExpiringItems(now, 90*24*time.Hour), 7)
	assert.Empty(t, w.ExpiringItems(now, time.Hour))
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"contiguous", "round-robin", "closest-to-start"} {
		strategy, err := warehouse.ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, strategy.String())
		assert.True(t, strategy.Valid())
	}

	_, err := warehouse.ParseStrategy("best-fit")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
