package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

const (
	EventOrderPlaced = "order.placed"

	orderTimeout = 5 * time.Second
)

type OrderPlacedEvent struct {
	OrderID   string            `json:"order_id"`
	ShopperID string            `json:"shopper_id"`
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     string            `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
}

// OrderWorker drains the order queue. A failed save restores the shopper's
// cart so nothing they picked is lost.
type OrderWorker struct {
	db        port.DatabaseRepository
	carts     *CartService
	publisher port.EventPublisher
	log       *zap.Logger
	timeout   time.Duration
}

func NewOrderWorker(db port.DatabaseRepository, carts *CartService, publisher port.EventPublisher, log *zap.Logger) *OrderWorker {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderWorker{db: db, carts: carts, publisher: publisher, log: log, timeout: orderTimeout}
}

// Run processes orders until queue is closed.
func (w *OrderWorker) Run(id int, queue <-chan domain.Order) {
	log := w.log.With(zap.Int("worker", id))
	for order := range queue {
		w.process(log, order)
	}
}

func (w *OrderWorker) process(log *zap.Logger, order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	order.Status = domain.OrderStatusConfirmed
	order.UpdatedAt = time.Now()

	if err := w.db.CreateOrder(ctx, order); err != nil {
		log.Error("failed to save order", zap.String("order_id", order.ID), zap.Error(err))

		// The save may have failed on ctx's deadline, so restore on a fresh one.
		rctx, rcancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
		defer rcancel()

		if _, rerr := w.carts.Restore(rctx, order.ShopperID, order.Items); rerr != nil {
			log.Error("CRITICAL cart restore failed",
				zap.String("order_id", order.ID),
				zap.String("shopper_id", order.ShopperID),
				zap.Error(rerr),
			)
		} else {
			log.Info("restored cart", zap.String("order_id", order.ID))
		}
		return
	}
	log.Info("saved order", zap.String("order_id", order.ID), zap.Int("items", order.ItemCount()))

	if w.publisher == nil {
		return
	}
	payload, err := json.Marshal(OrderPlacedEvent{
		OrderID:   order.ID,
		ShopperID: order.ShopperID,
		Items:     order.Items,
		ItemCount: order.ItemCount(),
		Total:     order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		log.Error("failed to encode order event", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := w.publisher.Publish(ctx, EventOrderPlaced, order.ID, payload); err != nil {
		log.Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
	}
}
