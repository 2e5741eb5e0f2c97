package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCartService(store *mockCartStorage) *CartService {
	return NewCartService(store, newTestCatalog(), zap.NewNop(), "")
}

func TestCartService_AddLine(t *testing.T) {
	ctx := context.Background()
	store := newMockCartStorage()
	svc := newTestCartService(store)

	cart, product, err := svc.AddLine(ctx, "shopper-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Pro Football 2024", product.Name)
	assert.Equal(t, 1, cart.TotalItemCount())

	cart, _, err = svc.AddLine(ctx, "shopper-1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
	assert.True(t, decimal.RequireFromString("90").Equal(cart.TotalValue()))

	stored, err := svc.Cart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Lines(), stored.Lines())
	assert.Contains(t, store.blobs, DefaultCartKeyPrefix+"shopper-1")
}

func TestCartService_AddLineUnknownProduct(t *testing.T) {
	store := newMockCartStorage()
	svc := newTestCartService(store)

	_, _, err := svc.AddLine(context.Background(), "shopper-1", 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, store.writes)
}

func TestCartService_AddsPreserveOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newMockCartStorage())

	for _, id := range []int{3, 1, 3} {
		_, _, err := svc.AddLine(ctx, "s", id)
		require.NoError(t, err)
	}

	cart, err := svc.Cart(ctx, "s")
	require.NoError(t, err)
	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].ProductID)
}

func TestCartService_RemoveLine(t *testing.T) {
	ctx := context.Background()
	store := newMockCartStorage()
	svc := newTestCartService(store)

	_, _, err := svc.AddLine(ctx, "s", 2)
	require.NoError(t, err)

	cart, err := svc.RemoveLine(ctx, "s", 2)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "[]", string(store.blobs[DefaultCartKeyPrefix+"s"]))

	writes := store.writes
	cart, err = svc.RemoveLine(ctx, "s", 2)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, writes, store.writes, "removing an absent line must not write")
}

func TestCartService_SetQuantityDelta(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newMockCartStorage())

	_, _, err := svc.AddLine(ctx, "s", 4)
	require.NoError(t, err)

	cart, err := svc.SetQuantityDelta(ctx, "s", 4, 2)
	require.NoError(t, err)
	line, ok := cart.Line(4)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)

	cart, err = svc.SetQuantityDelta(ctx, "s", 4, -3)
	require.NoError(t, err)
	_, ok = cart.Line(4)
	assert.False(t, ok)

	cart, err = svc.SetQuantityDelta(ctx, "s", 7, 5)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_ShoppersAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newMockCartStorage())

	_, _, err := svc.AddLine(ctx, "a", 1)
	require.NoError(t, err)

	cart, err := svc.Cart(ctx, "b")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_MalformedStateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	store := newMockCartStorage()
	store.blobs[DefaultCartKeyPrefix+"s"] = []byte("{not json")
	svc := NewCartService(store, newTestCatalog(), zap.New(core), "")

	cart, err := svc.Cart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 1, logs.FilterMessage("resetting unreadable cart").Len())

	cart, _, err = svc.AddLine(ctx, "s", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItemCount())
}

func TestCartService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	store := newMockCartStorage()
	svc := newTestCartService(store)

	store.failWrite = true
	_, _, err := svc.AddLine(ctx, "s", 1)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errStorageDown)

	store.failLoad = true
	cart, err := svc.Cart(ctx, "s")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_ClearAndRestore(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newMockCartStorage())

	for _, id := range []int{1, 2, 2} {
		_, _, err := svc.AddLine(ctx, "s", id)
		require.NoError(t, err)
	}

	previous, err := svc.Clear(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 3, previous.TotalItemCount())

	current, err := svc.Cart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, current.IsEmpty())

	// Shopper keeps browsing before the restore lands.
	_, _, err = svc.AddLine(ctx, "s", 2)
	require.NoError(t, err)

	restored, err := svc.Restore(ctx, "s", previous.Lines())
	require.NoError(t, err)
	assert.Equal(t, 4, restored.TotalItemCount())
	line, _ := restored.Line(2)
	assert.Equal(t, 3, line.Quantity)
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newMockCartStorage())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.AddLine(ctx, "s", 5); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cart, err := svc.Cart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, n, cart.TotalItemCount())
}

func TestCartService_CustomKeyPrefix(t *testing.T) {
	store := newMockCartStorage()
	svc := NewCartService(store, newTestCatalog(), nil, "test:")

	_, _, err := svc.AddLine(context.Background(), "s", 1)
	require.NoError(t, err)
	assert.Contains(t, store.blobs, "test:s")
}
