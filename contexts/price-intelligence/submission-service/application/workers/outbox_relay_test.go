package workers

import (
	"context"
	"testing"

	"pricesaver/contexts/price-intelligence/submission-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/submission-service/application/commands"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

type capturingPublisher struct {
	events []ports.EventEnvelope
	topics []string
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestRelayPublishesApprovalEvents(t *testing.T) {
	store := memory.NewStore(nil)
	price := 450.0
	submit := commands.SubmitDraftUseCase{Repository: store, Clock: store, IDGen: store}
	draft, err := submit.Execute(context.Background(), commands.SubmitDraftCommand{
		ItemName:    "Rice",
		ParsedPrice: &price,
		SubmitterID: "user-1",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	moderate := commands.ModerateDraftUseCase{
		Repository:   store,
		Stores:       store,
		Clock:        store,
		IDGen:        store,
		RewardAmount: 50,
	}
	if _, err := moderate.Approve(context.Background(), commands.ApproveDraftCommand{DraftID: draft.DraftID}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "price.approved" {
		t.Fatalf("unexpected topic: %s", publisher.topics[0])
	}

	// A second run must find the outbox drained.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected outbox drained, got %d events", len(publisher.events))
	}
}
