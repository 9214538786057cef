package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewleaf/client/internal/domain/catalog"
)

func line(productID string, price float64, quantity int) LineItem {
	return LineItem{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     decimal.NewFromFloat(price),
		Quantity:  quantity,
	}
}

func TestCart_Add(t *testing.T) {
	t.Run("appends new line", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("p1", 150, 1)))
		require.NoError(t, c.Add(line("p2", 80, 1)))

		assert.Len(t, c.Items, 2)
		assert.Equal(t, 1, c.Items[0].Quantity)
	})

	t.Run("same product twice merges into one line with quantity 2", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("p1", 150, 1)))
		require.NoError(t, c.Add(line("p1", 150, 1)))

		assert.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		c := New()
		err := c.Add(line("p1", 150, 0))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_Remove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(line("p1", 150, 2)))
	require.NoError(t, c.Add(line("p2", 80, 1)))

	t.Run("removes the whole line", func(t *testing.T) {
		c.Remove("p1")
		assert.Len(t, c.Items, 1)
		_, found := c.Find("p1")
		assert.False(t, found)
	})

	t.Run("absent product leaves cart unchanged", func(t *testing.T) {
		before := append([]LineItem(nil), c.Items...)
		c.Remove("missing")
		assert.Equal(t, before, c.Items)
	})
}

func TestCart_Total(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(line("p1", 150, 1)))
	require.NoError(t, c.Add(line("p1", 150, 1)))

	assert.Equal(t, "300.00", c.Total().StringFixed(2))

	require.NoError(t, c.Add(line("p2", 99.5, 3)))
	assert.Equal(t, "598.50", c.Total().StringFixed(2))
}

func TestCart_ItemCount(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.ItemCount())

	require.NoError(t, c.Add(line("p1", 150, 2)))
	require.NoError(t, c.Add(line("p2", 80, 1)))
	assert.Equal(t, 3, c.ItemCount())
}

func TestLineFromProduct(t *testing.T) {
	p := catalog.Product{
		ID:       "p1",
		Name:     "Espresso",
		ImageURL: "https://img.example/espresso.png",
		Price:    decimal.NewFromInt(150),
	}

	li := LineFromProduct(p)
	assert.Equal(t, "p1", li.ProductID)
	assert.Equal(t, "Espresso", li.Name)
	assert.Equal(t, 1, li.Quantity)
	assert.True(t, li.Price.Equal(decimal.NewFromInt(150)))
}
