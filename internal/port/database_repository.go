package port

import (
	"context"

	"github.com/rl1809/fitgear/internal/core/domain"
)

type DatabaseRepository interface {
	// CreateOrder persists an order with its items and decrements stock
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetInventory retrieves inventory by product ID, nil when unknown
	GetInventory(ctx context.Context, productID int) (*domain.Inventory, error)

	// UpdateInventory updates inventory with version check for optimistic locking
	UpdateInventory(ctx context.Context, inventory domain.Inventory) error
}

type CatalogRepository interface {
	// ListProducts returns the catalog in display order
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// SeedProducts upserts products and sets their stock
	SeedProducts(ctx context.Context, products []domain.Product, stock int) error
}
