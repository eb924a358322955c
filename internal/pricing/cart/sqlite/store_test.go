package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront-pricing/internal/pricing"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/rules"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCart(t *testing.T, store *Store) *Cart {
	t.Helper()
	id, err := store.CreateCart(context.Background())
	require.NoError(t, err)
	return store.Cart(id)
}

func item(t *testing.T, c domain.Category, name string, qty int, price string) domain.LineItem {
	t.Helper()
	it, err := domain.NewLineItem(c, name, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return it
}

func TestCart_StoresAndRetrievesItems(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, openStore(t))

	require.NoError(t, cart.Add(ctx, item(t, domain.CategoryStandard, "Pen", 5, "2.0")))
	require.NoError(t, cart.Add(ctx, item(t, domain.CategoryElectronic, "USB Drive", 1, "15.99")))

	items, err := cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Pen", items[0].Name())
	assert.Equal(t, 5, items[0].Quantity())
	assert.Equal(t, domain.CategoryStandard, items[0].Category())
	assert.Equal(t, "USB Drive", items[1].Name())
	assert.Equal(t, domain.CategoryElectronic, items[1].Category())
	assert.True(t, decimal.RequireFromString("15.99").Equal(items[1].UnitPrice()))
}

func TestCart_NumberOfItems(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, openStore(t))

	n, err := cart.NumberOfItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, name := range []string{"Item1", "Item2", "Item3"} {
		require.NoError(t, cart.Add(ctx, item(t, domain.CategoryStandard, name, 2, "10")))
	}

	n, err = cart.NumberOfItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCart_IsolatedByID(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	a, b := newCart(t, store), newCart(t, store)
	require.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Add(ctx, item(t, domain.CategoryStandard, "Book", 1, "10")))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_FindCart(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	created := newCart(t, store)

	found, err := store.FindCart(ctx, created.ID())
	require.NoError(t, err)
	require.NoError(t, found.Add(ctx, item(t, domain.CategoryStandard, "Book", 1, "10")))

	n, err := created.NumberOfItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.FindCart(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestCart_AddToUnknownCartFails(t *testing.T) {
	err := openStore(t).Cart("ghost").Add(context.Background(), item(t, domain.CategoryStandard, "Book", 1, "10"))
	assert.Error(t, err)
}

func TestStore_ResetClearsAllCarts(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	cart := newCart(t, store)
	require.NoError(t, cart.Add(ctx, item(t, domain.CategoryStandard, "Item1", 1, "10")))
	require.NoError(t, cart.Add(ctx, item(t, domain.CategoryStandard, "Item2", 1, "20")))

	require.NoError(t, store.Reset(ctx))

	items, err := store.Cart(cart.ID()).Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = store.FindCart(ctx, cart.ID())
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestStore_CloseTwice(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestCart_QueryAfterCloseFails(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	cart := newCart(t, store)
	require.NoError(t, store.Close())

	_, err = cart.Items(context.Background())
	assert.Error(t, err)
}

func TestCart_PricedByEngine(t *testing.T) {
	ctx := context.Background()
	engine := pricing.NewEngine(newCart(t, openStore(t)), rules.Default())

	require.NoError(t, engine.AddToCart(ctx, item(t, domain.CategoryStandard, "Java Book", 1, "45.0")))

	total, err := engine.Calculate(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("50").Equal(total), total.String())
}
