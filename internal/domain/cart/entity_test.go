package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBook_MergesQuantity(t *testing.T) {
	c := NewShoppingCart(1)

	_, err := c.AddBook(10, 2)
	require.NoError(t, err)
	item, err := c.AddBook(10, 3)
	require.NoError(t, err)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 5, item.Quantity)

	t.Run("不同图书新增一行", func(t *testing.T) {
		_, err := c.AddBook(11, 1)
		require.NoError(t, err)
		assert.Len(t, c.Items, 2)
	})

	t.Run("数量非法", func(t *testing.T) {
		_, err := c.AddBook(12, 0)
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
		_, err = c.AddBook(10, MaxQuantity)
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
		assert.Equal(t, 5, c.FindItemByBook(10).Quantity)
	})
}

func TestUpdateQuantity(t *testing.T) {
	c := &ShoppingCart{ID: 1, Items: []*CartItem{{ID: 7, BookID: 10, Quantity: 1}}}

	item, err := c.UpdateQuantity(7, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = c.UpdateQuantity(8, 4)
	assert.True(t, errors.Is(err, ErrCartItemNotFound))

	_, err = c.UpdateQuantity(7, 0)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestSubtotalAndClear(t *testing.T) {
	c := &ShoppingCart{Items: []*CartItem{
		{BookID: 1, Quantity: 2, BookPrice: decimal.RequireFromString("10.00")},
		{BookID: 2, Quantity: 1, BookPrice: decimal.RequireFromString("5.50")},
	}}

	assert.Equal(t, "25.50", c.Subtotal().StringFixed(2))
	assert.False(t, c.IsEmpty())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}
