package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domainerrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
	"pricesaver/internal/shared/locationkey"
)

// priceEpsilon guards the inverted-price factor against zero-priced groups.
const priceEpsilon = 1e-6

const (
	countWeight = 0.7
	priceWeight = 0.3
)

// HeatmapService scores locations by how many cheap, recent approved
// observations they have. Unlike the resolver it aggregates the full history
// of each location inside the window.
type HeatmapService struct {
	Observations       ports.ObservationSource
	Catalog            ports.Catalog
	Snapshots          ports.SnapshotStore
	Clock              ports.Clock
	LegacyCatalogMatch bool
	Logger             *slog.Logger
}

// Generate recomputes the heatmap and overwrites the stored snapshot for the
// item. An empty result set still writes an empty snapshot; "no data" is a
// valid heatmap.
func (s HeatmapService) Generate(ctx context.Context, item string, windowDays int) (ports.HeatmapSnapshot, error) {
	logger := resolveLogger(s.Logger)
	if strings.TrimSpace(item) == "" {
		return ports.HeatmapSnapshot{}, domainerrors.ErrInvalidItemQuery
	}
	if !validWindow(windowDays) {
		return ports.HeatmapSnapshot{}, domainerrors.ErrInvalidWindow
	}

	matcher, err := newItemMatcher(ctx, s.Catalog, item, s.LegacyCatalogMatch)
	if err != nil {
		return ports.HeatmapSnapshot{}, err
	}

	cutoff := s.Clock.Now().UTC().AddDate(0, 0, -windowDays)
	rows, err := s.Observations.ListApprovedSince(ctx, cutoff)
	if err != nil {
		return ports.HeatmapSnapshot{}, err
	}

	type group struct {
		stat   ports.LocationStat
		prices []float64
	}
	groups := make(map[string]*group)
	for _, row := range rows {
		if !matcher.matches(row) {
			continue
		}
		key, name, store := rowLocation(row)
		entry, seen := groups[key]
		if !seen {
			entry = &group{stat: ports.LocationStat{Key: key, Name: name}}
			if store != nil {
				entry.stat.StoreID = store.StoreID
				entry.stat.Lat = store.Lat
				entry.stat.Lng = store.Lng
			}
			groups[key] = entry
		}
		entry.prices = append(entry.prices, row.Amount)
	}

	stats := make([]ports.LocationStat, 0, len(groups))
	for _, entry := range groups {
		stat := entry.stat
		stat.Count = len(entry.prices)
		stat.MinPrice = entry.prices[0]
		stat.MaxPrice = entry.prices[0]
		total := 0.0
		for _, price := range entry.prices {
			total += price
			if price < stat.MinPrice {
				stat.MinPrice = price
			}
			if price > stat.MaxPrice {
				stat.MaxPrice = price
			}
		}
		stat.AvgPrice = total / float64(stat.Count)
		stats = append(stats, stat)
	}

	counts := make([]float64, len(stats))
	inverted := make([]float64, len(stats))
	for i, stat := range stats {
		counts[i] = float64(stat.Count)
		inverted[i] = 1.0 / (stat.AvgPrice + priceEpsilon)
	}
	normCounts := normalize(counts)
	normInverted := normalize(inverted)
	for i := range stats {
		stats[i].Intensity = countWeight*normCounts[i] + priceWeight*normInverted[i]
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Intensity != stats[j].Intensity {
			return stats[i].Intensity > stats[j].Intensity
		}
		return stats[i].Key < stats[j].Key
	})

	snapshot := ports.HeatmapSnapshot{
		ItemName:    locationkey.Normalize(item),
		WindowDays:  windowDays,
		GeneratedAt: s.Clock.Now().UTC(),
		Locations:   stats,
	}
	if err := s.Snapshots.UpsertSnapshot(ctx, snapshot); err != nil {
		return ports.HeatmapSnapshot{}, err
	}

	logger.Info("heatmap snapshot generated",
		"event", "heatmap_snapshot_generated",
		"module", "price-intelligence/insights-service",
		"layer", "application",
		"item", snapshot.ItemName,
		"window_days", windowDays,
		"locations", len(stats),
	)
	return snapshot, nil
}

// Latest returns the stored snapshot without recomputation.
func (s HeatmapService) Latest(ctx context.Context, item string) (ports.HeatmapSnapshot, error) {
	if strings.TrimSpace(item) == "" {
		return ports.HeatmapSnapshot{}, domainerrors.ErrInvalidItemQuery
	}
	return s.Snapshots.GetSnapshot(ctx, locationkey.Normalize(item))
}

// normalize min-max scales values to [0,1]. When every value is equal the
// whole slice maps to 1.0: uniform popularity counts as maximal, and the
// division by zero never happens.
func normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	scaled := make([]float64, len(values))
	if max == min {
		for i := range scaled {
			scaled[i] = 1.0
		}
		return scaled
	}
	for i, v := range values {
		scaled[i] = (v - min) / (max - min)
	}
	return scaled
}
