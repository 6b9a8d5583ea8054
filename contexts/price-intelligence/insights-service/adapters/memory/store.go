package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domainerrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
)

// Store backs the insights read models in memory for tests and local wiring.
type Store struct {
	mu sync.RWMutex

	rows      []ports.ObservationRow
	items     map[string]string // lower(name) -> item id
	snapshots map[string]ports.HeatmapSnapshot
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]string),
		snapshots: make(map[string]ports.HeatmapSnapshot),
	}
}

// AddObservation seeds an approved observation row.
func (s *Store) AddObservation(row ports.ObservationRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, row)
}

// AddItem seeds a catalog entry.
func (s *Store) AddItem(itemID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[strings.ToLower(strings.TrimSpace(name))] = itemID
}

func (s *Store) ListApprovedSince(_ context.Context, cutoff time.Time) ([]ports.ObservationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.ObservationRow, 0, len(s.rows))
	for _, row := range s.rows {
		if row.SubmittedAt.Before(cutoff) {
			continue
		}
		items = append(items, row)
	}
	return items, nil
}

func (s *Store) CountItems(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.items)), nil
}

func (s *Store) FindItemIDByName(_ context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	itemID, found := s.items[strings.ToLower(strings.TrimSpace(name))]
	return itemID, found, nil
}

func (s *Store) UpsertSnapshot(_ context.Context, snapshot ports.HeatmapSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshot.ItemName] = snapshot
	return nil
}

func (s *Store) GetSnapshot(_ context.Context, itemName string) (ports.HeatmapSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, found := s.snapshots[strings.ToLower(strings.TrimSpace(itemName))]
	if !found {
		return ports.HeatmapSnapshot{}, domainerrors.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
