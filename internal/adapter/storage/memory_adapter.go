package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

// MemoryAdapter keeps carts, idempotency keys, orders and inventory in
// process. It backs the storefront when Redis or MySQL are not configured.
type MemoryAdapter struct {
	mu          sync.Mutex
	blobs       map[string][]byte
	idempotency map[string]struct{}
	orders      []domain.Order
	inventory   map[int]domain.Inventory
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		blobs:       make(map[string][]byte),
		idempotency: make(map[string]struct{}),
		inventory:   make(map[int]domain.Inventory),
	}
}

func (m *MemoryAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *MemoryAdapter) Update(ctx context.Context, key string, fn port.UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current []byte
	if raw, ok := m.blobs[key]; ok {
		current = append([]byte(nil), raw...)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		m.blobs[key] = append([]byte(nil), next...)
	}
	return nil
}

// Put stores a raw blob, bypassing cart encoding.
func (m *MemoryAdapter) Put(key string, blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
}

func (m *MemoryAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.idempotency[key]; ok {
		return false, nil
	}
	m.idempotency[key] = struct{}{}
	return true, nil
}

func (m *MemoryAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.idempotency, key)
	return nil
}

// SetStock makes stock tracking active for productID. Products without a
// stock entry are not limited.
func (m *MemoryAdapter) SetStock(productID, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	inv, ok := m.inventory[productID]
	if !ok {
		inv = domain.Inventory{ProductID: productID, CreatedAt: now}
	}
	inv.Stock = stock
	inv.UpdatedAt = now
	m.inventory[productID] = inv
}

func (m *MemoryAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range order.Items {
		if inv, ok := m.inventory[it.ProductID]; ok && inv.Stock < it.Quantity {
			return fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	now := time.Now()
	for _, it := range order.Items {
		if inv, ok := m.inventory[it.ProductID]; ok {
			inv.Stock -= it.Quantity
			inv.Version++
			inv.UpdatedAt = now
			m.inventory[it.ProductID] = inv
		}
	}

	m.orders = append(m.orders, order)
	return nil
}

func (m *MemoryAdapter) GetInventory(ctx context.Context, productID int) (*domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.inventory[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *MemoryAdapter) UpdateInventory(ctx context.Context, inv domain.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.inventory[inv.ProductID]
	if !ok || cur.Version != inv.Version {
		return ErrOptimisticLock
	}
	cur.Stock = inv.Stock
	cur.Version++
	cur.UpdatedAt = time.Now()
	m.inventory[inv.ProductID] = cur
	return nil
}

func (m *MemoryAdapter) Orders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Order, len(m.orders))
	copy(out, m.orders)
	return out
}
