package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/fitgear/internal/core/domain"
)

// Mock DatabaseRepository with versioned inventory
type mockInventoryDB struct {
	mockDatabase
	mu        sync.Mutex
	inventory map[int]domain.Inventory
	conflicts int
}

func (m *mockInventoryDB) GetInventory(ctx context.Context, productID int) (*domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.inventory[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *mockInventoryDB) UpdateInventory(ctx context.Context, inv domain.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflicts > 0 {
		m.conflicts--
		cur := m.inventory[inv.ProductID]
		cur.Version++
		m.inventory[inv.ProductID] = cur
		return domain.ErrOptimisticLock
	}
	cur := m.inventory[inv.ProductID]
	if cur.Version != inv.Version {
		return domain.ErrOptimisticLock
	}
	inv.Version++
	m.inventory[inv.ProductID] = inv
	return nil
}

func TestRestock(t *testing.T) {
	db := &mockInventoryDB{inventory: map[int]domain.Inventory{1: {ProductID: 1, Stock: 2, Version: 4}}}
	svc := NewInventoryService(db, nil)

	inv, err := svc.Restock(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, inv.Stock)
	assert.Equal(t, 5, inv.Version)
	assert.Equal(t, 50, db.inventory[1].Stock)
}

func TestRestock_RetriesConflicts(t *testing.T) {
	db := &mockInventoryDB{
		inventory: map[int]domain.Inventory{1: {ProductID: 1, Stock: 2}},
		conflicts: 2,
	}
	svc := NewInventoryService(db, nil)

	inv, err := svc.Restock(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Stock)
}

func TestRestock_GivesUp(t *testing.T) {
	db := &mockInventoryDB{
		inventory: map[int]domain.Inventory{1: {ProductID: 1}},
		conflicts: maxRestockAttempts,
	}
	svc := NewInventoryService(db, nil)

	_, err := svc.Restock(context.Background(), 1, 7)
	assert.ErrorIs(t, err, domain.ErrOptimisticLock)
}

func TestRestock_Invalid(t *testing.T) {
	svc := NewInventoryService(&mockInventoryDB{inventory: map[int]domain.Inventory{}}, nil)

	_, err := svc.Restock(context.Background(), 9, 1)
	assert.ErrorIs(t, err, ErrUnknownInventory)

	_, err = svc.Restock(context.Background(), 9, -1)
	assert.Error(t, err)
}
