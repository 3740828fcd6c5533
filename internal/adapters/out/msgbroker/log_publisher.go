package msgbroker

import (
	"context"

	"orderregistry/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// LogEventPublisher writes events to the application log instead of a broker.
// Used when no Kafka host is configured, typically in local development.
type LogEventPublisher struct {
	logger *zap.Logger
}

// NewLogEventPublisher creates a publisher that only logs events.
func NewLogEventPublisher(logger *zap.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish logs the event and reports success.
func (p *LogEventPublisher) Publish(_ context.Context, event order.OrderProcessedEvent) error {
	p.logger.Info("event published",
		zap.String("eventName", event.EventName),
		zap.String("orderId", event.OrderID),
		zap.String("status", event.Status),
		zap.String("totalAmount", event.TotalAmount.String()),
		zap.Int("products", len(event.Products)),
	)
	return nil
}
