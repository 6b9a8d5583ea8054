package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	domainerrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
)

// PriceEntry is one location's freshest approved price within the query
// window.
type PriceEntry struct {
	LocationKey  string
	LocationName string
	Price        float64
	Store        *ports.StoreRef
	SubmittedAt  time.Time
}

// CheapestResult is always a successful result; an empty window yields
// NoData rather than an error.
type CheapestResult struct {
	Item       string
	WindowDays int
	Cheapest   *PriceEntry
	Top5       []PriceEntry
	NoData     bool
}

// ResolverService computes the cheapest current price for an item. Per
// location it only ever considers the most recent observation: freshness
// beats history here, unlike the heatmap.
type ResolverService struct {
	Observations       ports.ObservationSource
	Catalog            ports.Catalog
	Clock              ports.Clock
	LegacyCatalogMatch bool
	Logger             *slog.Logger
}

func (s ResolverService) Cheapest(ctx context.Context, item string, windowDays int) (CheapestResult, error) {
	logger := resolveLogger(s.Logger)
	if strings.TrimSpace(item) == "" {
		return CheapestResult{}, domainerrors.ErrInvalidItemQuery
	}
	if !validWindow(windowDays) {
		return CheapestResult{}, domainerrors.ErrInvalidWindow
	}

	matcher, err := newItemMatcher(ctx, s.Catalog, item, s.LegacyCatalogMatch)
	if err != nil {
		return CheapestResult{}, err
	}

	cutoff := s.Clock.Now().UTC().AddDate(0, 0, -windowDays)
	rows, err := s.Observations.ListApprovedSince(ctx, cutoff)
	if err != nil {
		return CheapestResult{}, err
	}

	perLocation := make(map[string]PriceEntry)
	for _, row := range rows {
		if !matcher.matches(row) {
			continue
		}
		key, name, store := rowLocation(row)
		entry := PriceEntry{
			LocationKey:  key,
			LocationName: name,
			Price:        row.Amount,
			Store:        store,
			SubmittedAt:  row.SubmittedAt.UTC(),
		}
		if existing, seen := perLocation[key]; !seen || entry.SubmittedAt.After(existing.SubmittedAt) {
			perLocation[key] = entry
		}
	}

	result := CheapestResult{
		Item:       strings.TrimSpace(item),
		WindowDays: windowDays,
	}
	if len(perLocation) == 0 {
		result.NoData = true
		return result, nil
	}

	entries := make([]PriceEntry, 0, len(perLocation))
	for _, entry := range perLocation {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Price != entries[j].Price {
			return entries[i].Price < entries[j].Price
		}
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})

	cheapest := entries[0]
	result.Cheapest = &cheapest
	if len(entries) > 5 {
		entries = entries[:5]
	}
	result.Top5 = entries

	logger.Info("cheapest price resolved",
		"event", "cheapest_price_resolved",
		"module", "price-intelligence/insights-service",
		"layer", "application",
		"item", result.Item,
		"window_days", windowDays,
		"locations", len(result.Top5),
	)
	return result, nil
}
