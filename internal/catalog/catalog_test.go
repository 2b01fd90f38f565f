package catalog_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsobcaldas/storage-control/internal/catalog"
	"github.com/tarsobcaldas/storage-control/internal/model"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("registers product with zero stock", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		name := gofakeit.ProductName()
		price := int64(gofakeit.Number(1, 10_000))

		product, err := list.Add(name, price, model.Normal())
		require.NoError(t, err)

		assert.NotEmpty(t, product.ID)
		assert.Equal(t, name, product.Name)
		assert.Equal(t, price, product.PriceCents)
		assert.Zero(t, product.Quantity)
	})

	t.Run("rejects duplicate name case-insensitively", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		_, err := list.Add("Apple", 100, model.Normal())
		require.NoError(t, err)

		_, err = list.Add("aPPle", 200, model.Normal())
		assert.ErrorIs(t, err, model.ErrNameExists)
	})

	t.Run("rejects empty name and negative price", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()

		_, err := list.Add("   ", 100, model.Normal())
		assert.ErrorIs(t, err, model.ErrInvalidArgument)

		_, err = list.Add("Apple", -1, model.Normal())
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes stockless product", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		product, err := list.Add("Apple", 100, model.Normal())
		require.NoError(t, err)

		require.NoError(t, list.Remove(product.ID))
		_, err = list.Product(product.ID)
		assert.ErrorIs(t, err, model.ErrProductNotListed)
	})

	t.Run("refuses product with stock", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		product, err := list.Add("Apple", 100, model.Normal())
		require.NoError(t, err)
		require.NoError(t, list.StepQuantity(product.ID, 5))

		assert.ErrorIs(t, list.Remove(product.ID), model.ErrHasStock)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		assert.ErrorIs(t, list.Remove(gofakeit.UUID()), model.ErrProductNotListed)
	})
}

func TestStepQuantity(t *testing.T) {
	t.Parallel()

	list := catalog.NewList()
	product, err := list.Add("Apple", 100, model.Normal())
	require.NoError(t, err)

	require.NoError(t, list.StepQuantity(product.ID, 10))
	assert.Equal(t, 10, product.Quantity)

	require.NoError(t, list.StepQuantity(product.ID, -4))
	assert.Equal(t, 6, product.Quantity)

	err = list.StepQuantity(product.ID, -7)
	assert.ErrorIs(t, err, model.ErrNotEnoughQuantity)
	assert.Equal(t, 6, product.Quantity)
}

func TestEmptyQuantity(t *testing.T) {
	t.Parallel()

	list := catalog.NewList()
	product, err := list.Add("Apple", 100, model.Normal())
	require.NoError(t, err)
	require.NoError(t, list.StepQuantity(product.ID, 42))

	had, err := list.EmptyQuantity(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, had)
	assert.Zero(t, product.Quantity)
}

func TestSetPrice(t *testing.T) {
	t.Parallel()

	list := catalog.NewList()
	product, err := list.Add("Apple", 100, model.Normal())
	require.NoError(t, err)

	require.NoError(t, list.SetPrice(product.ID, 250))
	assert.Equal(t, int64(250), product.PriceCents)

	assert.ErrorIs(t, list.SetPrice(product.ID, -1), model.ErrInvalidArgument)
	assert.ErrorIs(t, list.SetPrice(gofakeit.UUID(), 100), model.ErrProductNotListed)
}

func TestFilters(t *testing.T) {
	t.Parallel()

	list := catalog.NewList()
	require.NoError(t, catalog.Bootstrap(list))

	t.Run("by quality", func(t *testing.T) {
		t.Parallel()

		fragile := list.FilterByQuality(model.QualityFragile)
		require.Len(t, fragile, 1)
		assert.Equal(t, "Banana", fragile[0].Name)
	})

	t.Run("by price bounds", func(t *testing.T) {
		t.Parallel()

		cheap := list.FilterByMaxPrice(75)
		require.Len(t, cheap, 2)
		assert.Equal(t, "Banana", cheap[0].Name)
		assert.Equal(t, "Watermelon", cheap[1].Name)

		pricey := list.FilterByMinPrice(80)
		require.Len(t, pricey, 1)
		assert.Equal(t, "Apple", pricey[0].Name)
	})

	t.Run("search matches every word", func(t *testing.T) {
		t.Parallel()

		list := catalog.NewList()
		_, err := list.Add("Green Apple", 120, model.Normal())
		require.NoError(t, err)
		_, err = list.Add("Red Apple", 110, model.Normal())
		require.NoError(t, err)

		hits := list.SearchByName("apple green")
		require.Len(t, hits, 1)
		assert.Equal(t, "Green Apple", hits[0].Name)

		assert.Len(t, list.SearchByName("apple"), 2)
		assert.Empty(t, list.SearchByName("pear"))
	})
}

func TestBootstrap(t *testing.T) {
	t.Parallel()

	list := catalog.NewList()
	require.NoError(t, catalog.Bootstrap(list))
	require.Equal(t, 3, list.Len())

	banana, err := list.ProductByName("banana")
	require.NoError(t, err)
	maxLevel, fragile := banana.Quality.Ceiling()
	assert.True(t, fragile)
	assert.Equal(t, 3, maxLevel)

	melon, err := list.ProductByName("Watermelon")
	require.NoError(t, err)
	assert.Equal(t, 3, melon.Quality.SpanWidth())
}
