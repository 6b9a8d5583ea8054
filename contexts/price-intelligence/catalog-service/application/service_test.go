package application_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"pricesaver/contexts/price-intelligence/catalog-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/catalog-service/application"
	domainerrors "pricesaver/contexts/price-intelligence/catalog-service/domain/errors"
)

func newCatalogFixture() (*application.Service, *memory.Store) {
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return application.NewService(store, store, store, logger), store
}

func TestCreateItemRequiresName(t *testing.T) {
	service, _ := newCatalogFixture()

	_, err := service.CreateItem(context.Background(), application.CreateItemInput{Name: "   "})
	if !errors.Is(err, domainerrors.ErrInvalidCatalogInput) {
		t.Fatalf("expected ErrInvalidCatalogInput, got %v", err)
	}
}

func TestCreateItemRejectsDuplicateName(t *testing.T) {
	service, _ := newCatalogFixture()
	ctx := context.Background()

	if _, err := service.CreateItem(ctx, application.CreateItemInput{Name: "Rice"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := service.CreateItem(ctx, application.CreateItemInput{Name: "rice"})
	if !errors.Is(err, domainerrors.ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
}

func TestCreateItemTrimsAndCounts(t *testing.T) {
	service, store := newCatalogFixture()
	ctx := context.Background()

	item, err := service.CreateItem(ctx, application.CreateItemInput{Name: "  Rice  ", Category: " Grains "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Name != "Rice" || item.Category != "Grains" {
		t.Fatalf("fields not trimmed: %+v", item)
	}
	count, err := store.CountItems(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item, got %d", count)
	}
}

func TestFindItemIDByNameIsCaseInsensitive(t *testing.T) {
	service, store := newCatalogFixture()
	ctx := context.Background()

	item, err := service.CreateItem(ctx, application.CreateItemInput{Name: "Garri"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id, ok, err := store.FindItemIDByName(ctx, "GARRI")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !ok || id != item.ItemID {
		t.Fatalf("expected id %s, got %s (found=%v)", item.ItemID, id, ok)
	}
}

func TestCreateStoreCoordinatesComeAsPair(t *testing.T) {
	service, _ := newCatalogFixture()
	ctx := context.Background()

	lat := 6.5158
	_, err := service.CreateStore(ctx, application.CreateStoreInput{Name: "Mama Tee", Lat: &lat})
	if !errors.Is(err, domainerrors.ErrInvalidCatalogInput) {
		t.Fatalf("expected ErrInvalidCatalogInput for lone latitude, got %v", err)
	}
}

func TestCreateStoreAndResolve(t *testing.T) {
	service, store := newCatalogFixture()
	ctx := context.Background()

	lat, lng := 6.5158, 3.3898
	created, err := service.CreateStore(ctx, application.CreateStoreInput{
		Name:    "Mama Tee Stores",
		Address: "New Hall, Akoka",
		Lat:     &lat,
		Lng:     &lng,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.HasCoordinates() {
		t.Fatalf("expected coordinates to be kept")
	}

	exists, err := store.StoreExists(ctx, created.StoreID)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected store %s to exist", created.StoreID)
	}
	if exists, _ := store.StoreExists(ctx, "missing"); exists {
		t.Fatalf("unexpected match for unknown store id")
	}
}

func TestGetStoreMissing(t *testing.T) {
	_, store := newCatalogFixture()

	_, err := store.GetStore(context.Background(), "nope")
	if !errors.Is(err, domainerrors.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}
