// Package msgbroker provides outbound event publishing adapters. The Kafka
// publisher is used in production; the log publisher stands in for local
// development where no broker runs.
package msgbroker

import (
	"context"
	"encoding/json"
	"fmt"

	"orderregistry/internal/core/domain/model/order"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// KafkaOrderPublisher publishes order processed events to a Kafka topic.
// Producing is synchronous with all-ISR acknowledgement so the registration
// workflow only commits once the broker has durably accepted the event.
type KafkaOrderPublisher struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

// NewKafkaOrderPublisher creates a publisher connected to the given brokers.
// The connection is lazy; broker availability surfaces on the first publish.
func NewKafkaOrderPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaOrderPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &KafkaOrderPublisher{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// Publish sends the event as a JSON record keyed by the order id, so all
// events of one order land on the same partition.
func (p *KafkaOrderPublisher) Publish(ctx context.Context, event order.OrderProcessedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(event.OrderID),
		Value: payload,
	}

	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.topic),
		zap.String("orderId", event.OrderID),
	)
	return nil
}

// Close flushes buffered records and releases the client.
func (p *KafkaOrderPublisher) Close() {
	p.client.Close()
}
