package port

import "context"

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload []byte) error
}
