package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "pricesaver/contexts/price-intelligence/submission-service/application"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

// OutboxRelay publishes pending approval events to the event bus. The engine
// only ever appends outbox rows inside the approval transaction; fan-out to a
// transport happens here, outside the core.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("price outbox list failed",
			"event", "price_outbox_list_failed",
			"module", "price-intelligence/submission-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("price outbox decode failed",
				"event", "price_outbox_decode_failed",
				"module", "price-intelligence/submission-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("price outbox publish failed",
				"event", "price_outbox_publish_failed",
				"module", "price-intelligence/submission-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("price outbox mark published failed",
				"event", "price_outbox_mark_published_failed",
				"module", "price-intelligence/submission-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("price outbox relay cycle completed",
			"event", "price_outbox_relay_completed",
			"module", "price-intelligence/submission-service",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
