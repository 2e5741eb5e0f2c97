package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/core/domain"
)

func runWorkers(w *OrderWorker, svc *OrderService, n int) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.Run(id, svc.GetOrderQueue())
		}(i)
	}
	return &wg
}

func TestOrderWorker_SavesAndPublishes(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	carts, svc := newCheckoutFixture(t, 10)
	db := &mockDatabase{}
	pub := &mockPublisher{}
	wg := runWorkers(NewOrderWorker(db, carts, pub, zap.NewNop()), svc, 3)

	fillCart(t, carts, "shopper-1", 1, 2)
	placed, err := svc.Checkout(ctx, "req-1", "shopper-1")
	require.NoError(t, err)

	svc.Close()
	wg.Wait()

	require.Len(t, db.orders, 1)
	assert.Equal(t, placed.ID, db.orders[0].ID)
	assert.Equal(t, domain.OrderStatusConfirmed, db.orders[0].Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventOrderPlaced, pub.events[0].eventType)
	assert.Equal(t, placed.ID, pub.events[0].key)

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(pub.events[0].payload, &event))
	assert.Equal(t, "shopper-1", event.ShopperID)
	assert.Equal(t, 2, event.ItemCount)
	assert.Equal(t, "165.00", event.Total)

	cart, err := carts.Cart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestOrderWorker_FailureRestoresCart(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	carts, svc := newCheckoutFixture(t, 10)
	db := &mockDatabase{err: errors.New("insufficient stock")}
	pub := &mockPublisher{}
	wg := runWorkers(NewOrderWorker(db, carts, pub, nil), svc, 1)

	fillCart(t, carts, "shopper-1", 3, 3, 5)
	_, err := svc.Checkout(ctx, "req-1", "shopper-1")
	require.NoError(t, err)

	svc.Close()
	wg.Wait()

	assert.Empty(t, db.orders)
	assert.Empty(t, pub.events)

	cart, err := carts.Cart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItemCount())
	line, ok := cart.Line(3)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestOrderWorker_NilPublisher(t *testing.T) {
	defer goleak.VerifyNone(t)

	carts, svc := newCheckoutFixture(t, 10)
	db := &mockDatabase{}
	wg := runWorkers(NewOrderWorker(db, carts, nil, nil), svc, 1)

	fillCart(t, carts, "shopper-1", 8)
	_, err := svc.Checkout(context.Background(), "req-1", "shopper-1")
	require.NoError(t, err)

	svc.Close()
	wg.Wait()

	assert.Len(t, db.orders, 1)
}

func TestOrderWorker_TimeoutStillRestoresCart(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	carts, svc := newCheckoutFixture(t, 10)
	db := &mockDatabase{blockUntilDone: true}
	worker := NewOrderWorker(db, carts, &mockPublisher{}, nil)
	worker.timeout = 50 * time.Millisecond
	wg := runWorkers(worker, svc, 1)

	fillCart(t, carts, "shopper-1", 2, 7)
	_, err := svc.Checkout(ctx, "req-1", "shopper-1")
	require.NoError(t, err)

	svc.Close()
	wg.Wait()

	assert.Empty(t, db.orders)
	cart, err := carts.Cart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItemCount())
}
