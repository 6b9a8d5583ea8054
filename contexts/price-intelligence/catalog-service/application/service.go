package application

import (
	"context"
	"log/slog"
	"strings"

	"pricesaver/contexts/price-intelligence/catalog-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/catalog-service/domain/errors"
	"pricesaver/contexts/price-intelligence/catalog-service/ports"
)

type CreateItemInput struct {
	Name        string
	Category    string
	Description string
}

type CreateStoreInput struct {
	Name    string
	Address string
	Lat     *float64
	Lng     *float64
}

// Service covers both catalog aggregates. They share one repository because
// stores and items live in the same relational schema and are always managed
// together by operators.
type Service struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewService(repo ports.Repository, clock ports.Clock, idGen ports.IDGenerator, logger *slog.Logger) *Service {
	return &Service{
		Repository: repo,
		Clock:      clock,
		IDGen:      idGen,
		Logger:     resolveLogger(logger),
	}
}

func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (entities.Item, error) {
	item := entities.Item{
		ItemID:      s.IDGen.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.Clock.Now().UTC(),
	}
	if !item.ValidateCreate() {
		return entities.Item{}, domainerrors.ErrInvalidCatalogInput
	}

	if _, exists, err := s.Repository.FindItemIDByName(ctx, item.Name); err != nil {
		return entities.Item{}, err
	} else if exists {
		return entities.Item{}, domainerrors.ErrDuplicateItem
	}

	if err := s.Repository.CreateItem(ctx, item); err != nil {
		return entities.Item{}, err
	}

	s.Logger.Info("catalog item created",
		slog.String("event", "catalog_item_created"),
		slog.String("module", "catalog-service"),
		slog.String("layer", "application"),
		slog.String("item_id", item.ItemID),
	)

	return item, nil
}

func (s *Service) GetItem(ctx context.Context, itemID string) (entities.Item, error) {
	return s.Repository.GetItem(ctx, itemID)
}

func (s *Service) ListItems(ctx context.Context) ([]entities.Item, error) {
	return s.Repository.ListItems(ctx)
}

func (s *Service) CreateStore(ctx context.Context, input CreateStoreInput) (entities.Store, error) {
	store := entities.Store{
		StoreID:   s.IDGen.NewID(),
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Lat:       input.Lat,
		Lng:       input.Lng,
		CreatedAt: s.Clock.Now().UTC(),
	}
	if !store.ValidateCreate() {
		return entities.Store{}, domainerrors.ErrInvalidCatalogInput
	}

	if err := s.Repository.CreateStore(ctx, store); err != nil {
		return entities.Store{}, err
	}

	s.Logger.Info("store registered",
		slog.String("event", "store_registered"),
		slog.String("module", "catalog-service"),
		slog.String("layer", "application"),
		slog.String("store_id", store.StoreID),
	)

	return store, nil
}

func (s *Service) GetStore(ctx context.Context, storeID string) (entities.Store, error) {
	return s.Repository.GetStore(ctx, storeID)
}

func (s *Service) ListStores(ctx context.Context) ([]entities.Store, error) {
	return s.Repository.ListStores(ctx)
}
