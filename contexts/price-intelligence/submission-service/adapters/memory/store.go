package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	"pricesaver/contexts/price-intelligence/submission-service/ports"

	"github.com/google/uuid"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory Record Store used by tests and local wiring. The
// finalize methods mutate every affected record under one lock so the
// atomicity guarantees match the postgres adapter.
type Store struct {
	mu sync.RWMutex

	drafts       map[string]entities.Draft
	observations map[string]entities.Observation
	ledger       []entities.LedgerEntry
	balances     map[string]float64
	outbox       []outboxRow
	stores       map[string]bool
}

func NewStore(seed []entities.Draft) *Store {
	drafts := make(map[string]entities.Draft, len(seed))
	for _, item := range seed {
		drafts[item.DraftID] = item
	}
	return &Store{
		drafts:       drafts,
		observations: make(map[string]entities.Observation),
		balances:     make(map[string]float64),
		stores:       make(map[string]bool),
	}
}

func (s *Store) CreateDraft(_ context.Context, draft entities.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[draft.DraftID] = draft
	return nil
}

func (s *Store) GetDraft(_ context.Context, draftID string) (entities.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.drafts[strings.TrimSpace(draftID)]
	if !exists {
		return entities.Draft{}, domainerrors.ErrDraftNotFound
	}
	return item, nil
}

func (s *Store) ListDrafts(_ context.Context, filter ports.DraftFilter) ([]entities.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Draft, 0, len(s.drafts))
	for _, item := range s.drafts {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) FinalizeApproval(_ context.Context, approval ports.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.drafts[approval.Draft.DraftID]
	if !exists {
		return domainerrors.ErrDraftNotFound
	}
	if current.Finalized() {
		return domainerrors.ErrDraftFinalized
	}

	s.drafts[approval.Draft.DraftID] = approval.Draft
	s.observations[approval.Observation.ObservationID] = approval.Observation
	if approval.Reward != nil {
		s.ledger = append(s.ledger, *approval.Reward)
		s.balances[approval.Reward.UserID] += approval.Reward.Amount
	}

	payload, err := json.Marshal(approval.Event)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:  approval.Event.EventID,
			EventType: approval.Event.EventType,
			Payload:   payload,
			CreatedAt: approval.Event.OccurredAt,
		},
	})
	return nil
}

func (s *Store) FinalizeRejection(_ context.Context, draft entities.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.drafts[draft.DraftID]
	if !exists {
		return domainerrors.ErrDraftNotFound
	}
	if current.Finalized() {
		return domainerrors.ErrDraftFinalized
	}
	s.drafts[draft.DraftID] = draft
	return nil
}

func (s *Store) ListObservations(_ context.Context, filter ports.ObservationFilter) ([]entities.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Observation, 0, len(s.observations))
	for _, item := range s.observations {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrDraftNotFound
}

// RegisterStore seeds a known store id for the StoreResolver port.
func (s *Store) RegisterStore(storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stores[storeID] = true
}

func (s *Store) StoreExists(_ context.Context, storeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stores[storeID], nil
}

// Balance reports the credited balance for a submitter.
func (s *Store) Balance(userID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[userID]
}

// Ledger returns the reward entries credited to a submitter.
func (s *Store) Ledger(userID string) []entities.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entities.LedgerEntry, 0, len(s.ledger))
	for _, entry := range s.ledger {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
