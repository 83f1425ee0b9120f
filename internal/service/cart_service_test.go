package service

import (
	"context"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLine(productID string, price float64, qty int) models.CartLine {
	return models.CartLine{
		ProductID: productID,
		Name:      "Kit " + productID,
		Price:     price,
		Image:     "https://cdn.example.com/" + productID + ".jpg",
		Category:  "Automatizadores",
		Quantity:  qty,
	}
}

func TestCartTotalsAreSumOfLineExtensions(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 2))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, testUser, cartLine("p2", 50, 1))
	require.NoError(t, err)

	assert.Equal(t, 250.0, cart.Total())
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartAddMergesSameProduct(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 1))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, testUser, cartLine("p1", 100, 2))
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartAddClampsQuantityFloor(t *testing.T) {
	svc := NewCartService(newFakeFallback())

	cart, err := svc.Add(context.Background(), testUser, cartLine("p1", 100, 0))
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCartUpdateQuantityToZeroRemovesLine(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 2))
	require.NoError(t, err)
	_, err = svc.Add(ctx, testUser, cartLine("p2", 50, 1))
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, testUser, "p1", 0)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p2", cart.Lines[0].ProductID)
}

func TestCartUpdateQuantitySetsValue(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 2))
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, testUser, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, testUser, "missing", 5)
	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestCartRemove(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 1))
	require.NoError(t, err)

	cart, err := svc.Remove(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	_, err = svc.Remove(ctx, testUser, "p1")
	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestCartPersistsAcrossInstances(t *testing.T) {
	fb := newFakeFallback()
	ctx := context.Background()

	first := NewCartService(fb)
	_, err := first.Add(ctx, testUser, cartLine("p1", 100, 2))
	require.NoError(t, err)

	second := NewCartService(fb)
	cart, err := second.Get(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 200.0, cart.Total())
}

func TestCartClear(t *testing.T) {
	svc := NewCartService(newFakeFallback())
	ctx := context.Background()

	_, err := svc.Add(ctx, testUser, cartLine("p1", 100, 1))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, testUser))

	cart, err := svc.Get(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
