package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paypoq/storefront/catalog"
)

func product(id int64, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "product",
		Price: decimal.RequireFromString(price),
	}
}

func TestTotals(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "99.99"), 1)
	store.Add(product(2, "249.99"), 2)

	totals := store.Totals()
	assert.Equal(t, 3, totals.TotalItems)
	assert.True(t, totals.TotalPrice.Equal(decimal.RequireFromString("599.97")),
		"expected 599.97, got %s", totals.TotalPrice)
}

func TestTotalsIndependentOfOperationOrder(t *testing.T) {
	// Two different edit histories ending in the same cart contents
	// must derive identical totals.
	a := NewStore()
	a.Add(product(1, "10.00"), 2)
	a.Add(product(2, "5.50"), 1)

	b := NewStore()
	b.Add(product(2, "5.50"), 3)
	b.Add(product(1, "10.00"), 1)
	b.Add(product(1, "10.00"), 1)
	b.SetQuantity(2, 1)

	assert.Equal(t, a.Totals().TotalItems, b.Totals().TotalItems)
	assert.True(t, a.Totals().TotalPrice.Equal(b.Totals().TotalPrice))
}

func TestAddIncrementsExistingLine(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "10.00"), 1)
	store.Add(product(1, "10.00"), 2)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "10.00"), 0)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "10.00"), 2)

	store.SetQuantity(1, 0)
	assert.True(t, store.IsEmpty())

	// Negative quantities behave the same way.
	store.Add(product(1, "10.00"), 2)
	store.SetQuantity(1, -3)
	assert.True(t, store.IsEmpty())
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "10.00"), 1)

	store.Remove(42)
	assert.Len(t, store.Lines(), 1)
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "10.00"), 1)
	store.Add(product(2, "20.00"), 1)

	store.Clear()

	assert.True(t, store.IsEmpty())
	assert.Equal(t, 0, store.Totals().TotalItems)
	assert.True(t, store.Totals().TotalPrice.IsZero())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	store := NewStore()
	store.Add(product(3, "1.00"), 1)
	store.Add(product(1, "1.00"), 1)
	store.Add(product(2, "1.00"), 1)

	lines := store.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].ProductID)
	assert.Equal(t, int64(1), lines[1].ProductID)
	assert.Equal(t, int64(2), lines[2].ProductID)
}
