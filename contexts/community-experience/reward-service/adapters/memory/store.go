package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pricesaver/contexts/community-experience/reward-service/domain/entities"
)

type Store struct {
	mu       sync.RWMutex
	balances map[string]float64
	ledger   map[string][]entities.LedgerEntry
}

func NewStore() *Store {
	return &Store{
		balances: make(map[string]float64),
		ledger:   make(map[string][]entities.LedgerEntry),
	}
}

// Credit seeds a cashback entry. Production credits arrive through the
// moderation approval transaction, not through this adapter.
func (s *Store) Credit(userID string, amount float64, reason string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] += amount
	s.ledger[userID] = append(s.ledger[userID], entities.LedgerEntry{
		EntryID:   uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: at,
	})
}

func (s *Store) GetWallet(_ context.Context, userID string) (entities.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.Wallet{UserID: userID, Balance: s.balances[userID]}, nil
}

func (s *Store) ListLedger(_ context.Context, userID string, limit int) ([]entities.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]entities.LedgerEntry, len(s.ledger[userID]))
	copy(entries, s.ledger[userID])
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
