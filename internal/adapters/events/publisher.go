package events

import (
	"context"
	"log/slog"
)

// LoggingPublisher is the fallback publisher used when no kafka brokers
// are configured. Events are logged and dropped.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	p.logger.InfoContext(ctx, "event published to log sink",
		"module", "events.logging_publisher",
		"layer", "adapter",
		"operation", "publish",
		"event_type", eventType,
		"partition_key", partitionKey,
		"payload_bytes", len(payload),
	)
	return nil
}
