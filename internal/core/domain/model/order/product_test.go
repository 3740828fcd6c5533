package order_test

import (
	"testing"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.NewFromFloat(amount))
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	t.Run("should create valid product", func(t *testing.T) {
		p, err := order.NewProduct("Widget", mustMoney(t, 10.00), 2)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "Widget", p.Name())
		assert.Equal(t, "10.00", p.Price().String())
		assert.Equal(t, 2, p.Quantity())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		p, err := order.NewProduct("", mustMoney(t, 10.00), 2)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "product name")
	})

	t.Run("should fail with unconstructed price", func(t *testing.T) {
		var price kernel.Money

		p, err := order.NewProduct("Widget", price, 2)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "Money must be created")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		p, err := order.NewProduct("Widget", mustMoney(t, 10.00), 0)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		p, err := order.NewProduct("Widget", mustMoney(t, 10.00), -3)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "-3 is not greater than 0")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var price kernel.Money

		p, err := order.NewProduct("", price, -1)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "product name")
		assert.Contains(t, err.Error(), "Money must be created")
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should allow zero price", func(t *testing.T) {
		p, err := order.NewProduct("Freebie", kernel.Zero(), 1)

		require.NoError(t, err)
		assert.True(t, p.Price().IsZero())
	})
}

func TestProduct_Validate(t *testing.T) {
	t.Run("nil product fails", func(t *testing.T) {
		var p *order.Product
		require.ErrorIs(t, p.Validate(), order.ErrProductIsNotConstructed)
	})

	t.Run("zero value fails", func(t *testing.T) {
		p := &order.Product{}
		require.ErrorIs(t, p.Validate(), order.ErrProductIsNotConstructed)
	})
}

func TestProduct_TotalPrice(t *testing.T) {
	p, err := order.NewProduct("Widget", mustMoney(t, 10.00), 3)
	require.NoError(t, err)

	total, err := p.TotalPrice()

	require.NoError(t, err)
	assert.Equal(t, "30.00", total.String())
}
