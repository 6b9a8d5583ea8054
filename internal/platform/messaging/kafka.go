package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

// KafkaPublisher delivers outbox events to the broker. One writer covers all
// topics; the topic is set per message so approval events and any future
// event types share the connection pool.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventID, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.EntityID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write event %s to %s: %w", event.EventID, topic, err)
	}

	if p.logger != nil {
		p.logger.Info("event published",
			slog.String("event", "kafka_publish"),
			slog.String("module", "internal/platform/messaging"),
			slog.String("layer", "platform"),
			slog.String("topic", topic),
			slog.String("event_id", event.EventID),
			slog.String("event_type", event.EventType),
		)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
