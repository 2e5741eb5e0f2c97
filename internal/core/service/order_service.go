package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

// OrderService turns a shopper's cart into a pending order. The cart is
// cleared up front and the order is handed to the worker pool, which
// persists it or puts the items back.
type OrderService struct {
	carts      *CartService
	idem       port.IdempotencyStore
	orderQueue chan domain.Order

	// mu guards closed; senders hold it for reading so Close never closes
	// the queue under a pending send.
	mu     sync.RWMutex
	closed bool
}

func NewOrderService(carts *CartService, idem port.IdempotencyStore, queueSize int) *OrderService {
	return &OrderService{
		carts:      carts,
		idem:       idem,
		orderQueue: make(chan domain.Order, queueSize),
	}
}

func (s *OrderService) Checkout(ctx context.Context, requestID, shopperID string) (domain.Order, error) {
	idempotencyKey := fmt.Sprintf("checkout:%s", requestID)

	ok, err := s.idem.SetIdempotency(ctx, idempotencyKey)
	if err != nil {
		return domain.Order{}, fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return domain.Order{}, ErrDuplicateRequest
	}

	cart, err := s.carts.Clear(ctx, shopperID)
	if err != nil {
		return domain.Order{}, s.release(ctx, idempotencyKey, fmt.Errorf("clear cart failed: %w", err))
	}
	if cart.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	now := time.Now()
	order := domain.Order{
		ID:        uuid.NewString(),
		ShopperID: shopperID,
		Items:     cart.Lines(),
		Total:     cart.TotalValue(),
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.enqueue(ctx, order); err != nil {
		// Nothing was ordered; hand the items back and free the token.
		if _, rerr := s.carts.Restore(context.WithoutCancel(ctx), shopperID, order.Items); rerr != nil {
			err = fmt.Errorf("%w (restore failed: %v)", err, rerr)
		}
		return domain.Order{}, s.release(ctx, idempotencyKey, err)
	}
	return order, nil
}

func (s *OrderService) enqueue(ctx context.Context, order domain.Order) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrQueueClosed
	}
	select {
	case s.orderQueue <- order:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue order: %w", ctx.Err())
	}
}

func (s *OrderService) release(ctx context.Context, key string, cause error) error {
	if err := s.idem.ReleaseIdempotency(context.WithoutCancel(ctx), key); err != nil {
		return fmt.Errorf("%w (release %s failed: %v)", cause, key, err)
	}
	return cause
}

func (s *OrderService) GetOrderQueue() <-chan domain.Order {
	return s.orderQueue
}

// Close stops accepting orders and closes the queue once in-flight sends
// have finished. Later checkouts fail with ErrQueueClosed.
func (s *OrderService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.orderQueue)
}
