package ports

import (
	"context"
	"time"

	"pricesaver/contexts/price-intelligence/catalog-service/domain/entities"
)

type Repository interface {
	CreateItem(ctx context.Context, item entities.Item) error
	GetItem(ctx context.Context, itemID string) (entities.Item, error)
	ListItems(ctx context.Context) ([]entities.Item, error)
	CountItems(ctx context.Context) (int64, error)
	FindItemIDByName(ctx context.Context, name string) (string, bool, error)

	CreateStore(ctx context.Context, store entities.Store) error
	GetStore(ctx context.Context, storeID string) (entities.Store, error)
	ListStores(ctx context.Context) ([]entities.Store, error)
	StoreExists(ctx context.Context, storeID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}
