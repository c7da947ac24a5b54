package sample

import (
	"testing"

	"storefront/internal/storefront/catalog"
	"storefront/internal/storefront/orderstatus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesMatchProducts(t *testing.T) {
	assert.Equal(t, Categories(), catalog.Categories(Products()))
}

func TestProductsReturnsCopy(t *testing.T) {
	list := Products()
	list[0].Name = "changed"
	p, ok := Product("1")
	require.True(t, ok)
	assert.Equal(t, "Camiseta Básica Blanca", p.Name)
}

func TestOrdersFor(t *testing.T) {
	orders := OrdersFor("user-1")
	require.Len(t, orders, 4)

	first := orders[0]
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, orderstatus.Delivered, first.Status)
	assert.Equal(t, "117.48", first.Subtotal.StringFixed(2))
	assert.Equal(t, "99.86", first.Total.StringFixed(2))
	assert.False(t, first.CreatedAt.IsZero())

	assert.Equal(t, "149.99", orders[1].Total.StringFixed(2))
	assert.Nil(t, orders[1].AppliedCoupon)
}
