package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

const maxRestockAttempts = 3

var ErrUnknownInventory = errors.New("no inventory for product")

type InventoryService struct {
	db  port.DatabaseRepository
	log *zap.Logger
}

func NewInventoryService(db port.DatabaseRepository, log *zap.Logger) *InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryService{db: db, log: log}
}

// Restock sets a product's stock, re-reading the row when a concurrent
// writer wins the version check.
func (s *InventoryService) Restock(ctx context.Context, productID, stock int) (domain.Inventory, error) {
	if stock < 0 {
		return domain.Inventory{}, fmt.Errorf("stock must not be negative, got %d", stock)
	}

	for attempt := 1; ; attempt++ {
		inv, err := s.db.GetInventory(ctx, productID)
		if err != nil {
			return domain.Inventory{}, err
		}
		if inv == nil {
			return domain.Inventory{}, fmt.Errorf("%w %d", ErrUnknownInventory, productID)
		}

		next := *inv
		next.Stock = stock
		err = s.db.UpdateInventory(ctx, next)
		if err == nil {
			next.Version++
			return next, nil
		}
		if !errors.Is(err, domain.ErrOptimisticLock) || attempt == maxRestockAttempts {
			return domain.Inventory{}, err
		}
		s.log.Warn("restock conflict, retrying",
			zap.Int("product_id", productID),
			zap.Int("attempt", attempt),
		)
	}
}
