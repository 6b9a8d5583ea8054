package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"pricesaver/contexts/price-intelligence/insights-service/adapters/memory"
	domainerrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
)

func newResolver(store *memory.Store, legacy bool) ResolverService {
	return ResolverService{
		Observations:       store,
		Catalog:            store,
		Clock:              store,
		LegacyCatalogMatch: legacy,
	}
}

func seedObservation(store *memory.Store, location string, amount float64, age time.Duration) {
	store.AddObservation(ports.ObservationRow{
		ItemName:     "Rice",
		LocationText: location,
		Amount:       amount,
		SubmittedAt:  time.Now().UTC().Add(-age),
	})
}

func TestCheapestRiceScenario(t *testing.T) {
	store := memory.NewStore()
	seedObservation(store, "Location A", 500, 3*time.Hour)
	seedObservation(store, "Location B", 450, 2*time.Hour)
	seedObservation(store, "Location B", 450, 1*time.Hour)

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.NoData || result.Cheapest == nil {
		t.Fatalf("expected data, got none")
	}
	if result.Cheapest.Price != 450 {
		t.Fatalf("expected cheapest 450, got %v", result.Cheapest.Price)
	}
	if result.Cheapest.LocationKey != "text:location b" {
		t.Fatalf("expected cheapest at location b, got %s", result.Cheapest.LocationKey)
	}
	// One entry per location: the two B observations collapse to the latest.
	if len(result.Top5) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Top5))
	}
	if result.Top5[0].Price != 450 || result.Top5[1].Price != 500 {
		t.Fatalf("expected ascending [450 500], got [%v %v]", result.Top5[0].Price, result.Top5[1].Price)
	}
}

func TestCheapestKeepsFreshestPerLocation(t *testing.T) {
	store := memory.NewStore()
	// The newer, more expensive observation must win within the location.
	seedObservation(store, "Location A", 400, 5*time.Hour)
	seedObservation(store, "Location A", 600, 1*time.Hour)

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.Cheapest.Price != 600 {
		t.Fatalf("expected freshest price 600, got %v", result.Cheapest.Price)
	}
}

func TestCheapestTieBreaksByEarlierSubmission(t *testing.T) {
	store := memory.NewStore()
	seedObservation(store, "Location C", 450, 4*time.Hour)
	seedObservation(store, "Location D", 450, 2*time.Hour)

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.Cheapest.LocationKey != "text:location c" {
		t.Fatalf("expected earlier submission to win the tie, got %s", result.Cheapest.LocationKey)
	}
}

func TestCheapestCapsTopFive(t *testing.T) {
	store := memory.NewStore()
	locations := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, location := range locations {
		seedObservation(store, location, float64(100+i), time.Hour)
	}

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if len(result.Top5) != 5 {
		t.Fatalf("expected top5 capped at 5, got %d", len(result.Top5))
	}
	for i := 1; i < len(result.Top5); i++ {
		if result.Top5[i].Price < result.Top5[i-1].Price {
			t.Fatalf("top5 not sorted ascending at %d", i)
		}
	}
	if result.Cheapest.Price != result.Top5[0].Price {
		t.Fatalf("cheapest must equal the first top5 entry")
	}
}

func TestCheapestWindowValidation(t *testing.T) {
	store := memory.NewStore()
	resolver := newResolver(store, true)
	for _, days := range []int{0, -1, 366} {
		if _, err := resolver.Cheapest(context.Background(), "Rice", days); !errors.Is(err, domainerrors.ErrInvalidWindow) {
			t.Fatalf("expected invalid window for %d days, got %v", days, err)
		}
	}
}

func TestCheapestExcludesObservationsOutsideWindow(t *testing.T) {
	store := memory.NewStore()
	seedObservation(store, "Location A", 300, 10*24*time.Hour)

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if !result.NoData {
		t.Fatalf("expected no data outside window")
	}
}

func TestCheapestNoDataIsNotAnError(t *testing.T) {
	store := memory.NewStore()
	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("expected success on empty data, got %v", err)
	}
	if !result.NoData || result.Cheapest != nil || len(result.Top5) != 0 {
		t.Fatalf("expected explicit no-data result")
	}
}

func TestCheapestLegacyCatalogRule(t *testing.T) {
	store := memory.NewStore()
	seedObservation(store, "Location A", 500, time.Hour)

	resolver := newResolver(store, true)

	// Empty catalog: unlinked observations match every query.
	result, err := resolver.Cheapest(context.Background(), "Anything", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.NoData {
		t.Fatalf("expected unlinked observation to match with empty catalog")
	}

	// Non-empty catalog: unlinked observations match nothing, even their own
	// recorded name.
	store.AddItem("item-1", "Rice")
	result, err = resolver.Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if !result.NoData {
		t.Fatalf("expected unlinked observation to stop matching once catalog has entries")
	}

	// Linked observations match through the catalog id.
	store.AddObservation(ports.ObservationRow{
		ItemID:       "item-1",
		ItemName:     "Rice",
		LocationText: "Location B",
		Amount:       450,
		SubmittedAt:  time.Now().UTC().Add(-time.Hour),
	})
	result, err = resolver.Cheapest(context.Background(), "rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.NoData || result.Cheapest.Price != 450 {
		t.Fatalf("expected linked observation match, got %+v", result)
	}
}

func TestCheapestNameMatchWhenLegacyDisabled(t *testing.T) {
	store := memory.NewStore()
	store.AddItem("item-1", "Beans")
	seedObservation(store, "Location A", 500, time.Hour)

	result, err := newResolver(store, false).Cheapest(context.Background(), "rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if result.NoData {
		t.Fatalf("expected name-based match with legacy rule disabled")
	}
}

func TestCheapestGroupsByStoreCoordinates(t *testing.T) {
	store := memory.NewStore()
	lat, lng := 6.52, 3.39
	ref := &ports.StoreRef{StoreID: "store-1", Name: "Mega Mart", Lat: &lat, Lng: &lng}
	store.AddObservation(ports.ObservationRow{
		ItemName:     "Rice",
		LocationText: "mega mart yaba",
		Amount:       480,
		SubmittedAt:  time.Now().UTC().Add(-2 * time.Hour),
		Store:        ref,
	})
	store.AddObservation(ports.ObservationRow{
		ItemName:     "Rice",
		LocationText: "Mega Mart, Yaba branch",
		Amount:       470,
		SubmittedAt:  time.Now().UTC().Add(-1 * time.Hour),
		Store:        ref,
	})

	result, err := newResolver(store, true).Cheapest(context.Background(), "Rice", 7)
	if err != nil {
		t.Fatalf("cheapest failed: %v", err)
	}
	if len(result.Top5) != 1 {
		t.Fatalf("expected text variants to collapse into one store group, got %d", len(result.Top5))
	}
	if result.Cheapest.LocationKey != "store:store-1" {
		t.Fatalf("expected store key, got %s", result.Cheapest.LocationKey)
	}
	if result.Cheapest.Price != 470 {
		t.Fatalf("expected freshest store price 470, got %v", result.Cheapest.Price)
	}
}
