package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

const DefaultCartKeyPrefix = "fitgear_cart:"

// CartService owns every cart mutation. Each mutation loads the shopper's
// cart, applies the change and persists it in one storage update, so the
// returned cart always matches what was stored.
type CartService struct {
	storage   port.CartStorage
	catalog   *domain.Catalog
	log       *zap.Logger
	keyPrefix string
}

func NewCartService(storage port.CartStorage, catalog *domain.Catalog, log *zap.Logger, keyPrefix string) *CartService {
	if keyPrefix == "" {
		keyPrefix = DefaultCartKeyPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		storage:   storage,
		catalog:   catalog,
		log:       log,
		keyPrefix: keyPrefix,
	}
}

func (s *CartService) Catalog() *domain.Catalog {
	return s.catalog
}

// Cart hydrates the shopper's cart. On a storage error it still returns an
// empty cart alongside the error.
func (s *CartService) Cart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	raw, ok, err := s.storage.Load(ctx, s.key(shopperID))
	if err != nil {
		return &domain.Cart{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok {
		return &domain.Cart{}, nil
	}
	return s.decode(shopperID, raw), nil
}

// AddLine adds one unit of productID. Unknown products are rejected with
// ErrProductNotFound and nothing is stored.
func (s *CartService) AddLine(ctx context.Context, shopperID string, productID int) (*domain.Cart, domain.Product, error) {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return nil, domain.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	cart, err := s.mutate(ctx, shopperID, func(c *domain.Cart) bool {
		c.Add(product)
		return true
	})
	if err != nil {
		return nil, product, err
	}
	return cart, product, nil
}

// RemoveLine deletes the line for productID; an absent line is a no-op.
func (s *CartService) RemoveLine(ctx context.Context, shopperID string, productID int) (*domain.Cart, error) {
	return s.mutate(ctx, shopperID, func(c *domain.Cart) bool {
		return c.Remove(productID)
	})
}

// SetQuantityDelta adds delta to the line's quantity, removing it once the
// quantity drops to zero or below. An absent line is a no-op.
func (s *CartService) SetQuantityDelta(ctx context.Context, shopperID string, productID, delta int) (*domain.Cart, error) {
	return s.mutate(ctx, shopperID, func(c *domain.Cart) bool {
		return c.ApplyDelta(productID, delta)
	})
}

// Clear empties the cart and returns what it held.
func (s *CartService) Clear(ctx context.Context, shopperID string) (*domain.Cart, error) {
	var previous *domain.Cart
	_, err := s.mutate(ctx, shopperID, func(c *domain.Cart) bool {
		previous = domain.NewCart(c.Lines())
		if c.IsEmpty() {
			return false
		}
		c.Clear()
		return true
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}

// Restore merges lines back into the cart, used when a checkout fails.
func (s *CartService) Restore(ctx context.Context, shopperID string, lines []domain.CartLine) (*domain.Cart, error) {
	return s.mutate(ctx, shopperID, func(c *domain.Cart) bool {
		changed := false
		for _, l := range lines {
			if l.Quantity > 0 {
				c.Merge(l)
				changed = true
			}
		}
		return changed
	})
}

func (s *CartService) mutate(ctx context.Context, shopperID string, fn func(*domain.Cart) bool) (*domain.Cart, error) {
	var result *domain.Cart

	err := s.storage.Update(ctx, s.key(shopperID), func(current []byte) ([]byte, error) {
		cart := s.decode(shopperID, current)
		result = cart
		if !fn(cart) {
			return nil, nil
		}
		return domain.EncodeCart(cart)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return result, nil
}

func (s *CartService) decode(shopperID string, raw []byte) *domain.Cart {
	cart, err := domain.DecodeCart(raw)
	if err != nil {
		s.log.Warn("resetting unreadable cart",
			zap.String("shopper_id", shopperID),
			zap.Error(fmt.Errorf("%w: %w", ErrMalformedState, err)),
		)
		return &domain.Cart{}
	}
	return cart
}

func (s *CartService) key(shopperID string) string {
	return s.keyPrefix + shopperID
}
