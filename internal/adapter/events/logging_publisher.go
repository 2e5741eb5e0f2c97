package events

import (
	"context"

	"go.uber.org/zap"
)

// LoggingPublisher stands in for Kafka when no brokers are configured.
type LoggingPublisher struct {
	log *zap.Logger
}

func NewLoggingPublisher(log *zap.Logger) *LoggingPublisher {
	return &LoggingPublisher{log: log}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, key string, payload []byte) error {
	p.log.Info("event published",
		zap.String("event_type", eventType),
		zap.String("key", key),
		zap.ByteString("payload", payload),
	)
	return nil
}
