package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/fitgear/internal/port"
)

const (
	idempotencyKeyTTL = 24 * time.Hour
	maxUpdateAttempts = 8
)

var ErrUpdateConflict = errors.New("cart update conflict")

type RedisAdapter struct {
	client  *redis.Client
	cartTTL time.Duration
}

// NewRedisAdapter stores carts with the given TTL; zero keeps them forever.
func NewRedisAdapter(client *redis.Client, cartTTL time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, cartTTL: cartTTL}
}

func (r *RedisAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Update runs fn inside WATCH/MULTI and retries when another client wrote
// the key in between.
func (r *RedisAdapter) Update(ctx context.Context, key string, fn port.UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.cartTTL)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return ErrUpdateConflict
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
