package ports

import (
	"context"
	"time"

	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
)

type DraftFilter struct {
	Status entities.ReviewStatus
	Limit  int
}

type ObservationFilter struct {
	Status entities.ReviewStatus
	Limit  int
}

// Approval is the three-way write performed when a draft is approved. The
// repository applies it as a single atomic unit: either the draft is still
// pending afterwards (the operation failed) or the observation, the status
// flip, the reward, and the outbox row are all visible together.
type Approval struct {
	Draft       entities.Draft
	Observation entities.Observation
	Reward      *entities.LedgerEntry // nil when the draft has no submitter
	Event       EventEnvelope
}

type Repository interface {
	CreateDraft(ctx context.Context, draft entities.Draft) error
	GetDraft(ctx context.Context, draftID string) (entities.Draft, error)
	ListDrafts(ctx context.Context, filter DraftFilter) ([]entities.Draft, error)
	FinalizeApproval(ctx context.Context, approval Approval) error
	FinalizeRejection(ctx context.Context, draft entities.Draft) error
	ListObservations(ctx context.Context, filter ObservationFilter) ([]entities.Observation, error)
}

type StoreResolver interface {
	StoreExists(ctx context.Context, storeID string) (bool, error)
}

type EventEnvelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
