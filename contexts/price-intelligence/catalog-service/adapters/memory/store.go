package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pricesaver/contexts/price-intelligence/catalog-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/catalog-service/domain/errors"
)

// Store keeps the catalog in process for tests and local runs.
type Store struct {
	mu     sync.RWMutex
	items  map[string]entities.Item
	stores map[string]entities.Store
}

func NewStore() *Store {
	return &Store{
		items:  make(map[string]entities.Item),
		stores: make(map[string]entities.Store),
	}
}

func (s *Store) CreateItem(_ context.Context, item entities.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return domainerrors.ErrDuplicateItem
		}
	}
	s.items[item.ItemID] = item
	return nil
}

func (s *Store) GetItem(_ context.Context, itemID string) (entities.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	return item, nil
}

func (s *Store) ListItems(_ context.Context) ([]entities.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
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
	for _, item := range s.items {
		if strings.EqualFold(item.Name, name) {
			return item.ItemID, true, nil
		}
	}
	return "", false, nil
}

func (s *Store) CreateStore(_ context.Context, store entities.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[store.StoreID] = store
	return nil
}

func (s *Store) GetStore(_ context.Context, storeID string) (entities.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	store, ok := s.stores[storeID]
	if !ok {
		return entities.Store{}, domainerrors.ErrStoreNotFound
	}
	return store, nil
}

func (s *Store) ListStores(_ context.Context) ([]entities.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stores := make([]entities.Store, 0, len(s.stores))
	for _, store := range s.stores {
		stores = append(stores, store)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })
	return stores, nil
}

func (s *Store) StoreExists(_ context.Context, storeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.stores[storeID]
	return ok, nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID() string { return uuid.NewString() }
