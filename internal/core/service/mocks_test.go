package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

var errStorageDown = errors.New("storage down")

// Mock CartStorage
type mockCartStorage struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	writes    int
	failLoad  bool
	failWrite bool
}

func newMockCartStorage() *mockCartStorage {
	return &mockCartStorage{blobs: make(map[string][]byte)}
}

func (m *mockCartStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLoad {
		return nil, false, errStorageDown
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, ok := m.blobs[key]
	return raw, ok, nil
}

func (m *mockCartStorage) Update(ctx context.Context, key string, fn port.UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.failWrite {
		return errStorageDown
	}
	next, err := fn(m.blobs[key])
	if err != nil {
		return err
	}
	if next != nil {
		m.blobs[key] = next
		m.writes++
	}
	return nil
}

// Mock IdempotencyStore
type mockIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func newMockIdempotencyStore() *mockIdempotencyStore {
	return &mockIdempotencyStore{keys: make(map[string]bool)}
}

func (m *mockIdempotencyStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return false, m.err
	}
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockIdempotencyStore) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, key)
	return nil
}

// Mock DatabaseRepository
type mockDatabase struct {
	mu             sync.Mutex
	orders         []domain.Order
	err            error
	blockUntilDone bool
}

func (m *mockDatabase) CreateOrder(ctx context.Context, order domain.Order) error {
	if m.blockUntilDone {
		<-ctx.Done()
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockDatabase) GetInventory(ctx context.Context, productID int) (*domain.Inventory, error) {
	return nil, nil
}

func (m *mockDatabase) UpdateInventory(ctx context.Context, inventory domain.Inventory) error {
	return nil
}

// Mock EventPublisher
type publishedEvent struct {
	eventType string
	key       string
	payload   []byte
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{eventType: eventType, key: key, payload: payload})
	return nil
}

func newTestCatalog() *domain.Catalog {
	catalog, err := domain.NewCatalog(domain.DefaultProducts())
	if err != nil {
		panic(err)
	}
	return catalog
}
