package ports

import (
	"context"

	"orderregistry/internal/core/domain/model/order"
)

// EventPublisher is the one-shot downstream notification contract.
// Publish is fire-and-forget from the consumer's point of view: there is no
// delivery acknowledgment and no retry. A returned error means the publish
// attempt itself failed, which the registration workflow treats as a failure
// of the whole operation.
type EventPublisher interface {
	Publish(ctx context.Context, event order.OrderProcessedEvent) error
}
