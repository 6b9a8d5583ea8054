package ports

import (
	"context"
	"time"
)

// StoreRef is the registered-store side of an observation join. Coordinates
// may be absent; the Location Key rule only prefers a store over free text
// when both coordinates are known.
type StoreRef struct {
	StoreID string
	Name    string
	Lat     *float64
	Lng     *float64
}

// ObservationRow is one approved price record joined with its registered
// store, as read by the resolver and heatmap aggregations.
type ObservationRow struct {
	ObservationID string
	ItemID        string
	ItemName      string
	LocationText  string
	Amount        float64
	SubmittedAt   time.Time
	Store         *StoreRef
}

type ObservationSource interface {
	ListApprovedSince(ctx context.Context, cutoff time.Time) ([]ObservationRow, error)
}

// Catalog is the read surface of the item catalog the legacy match rule
// depends on.
type Catalog interface {
	CountItems(ctx context.Context) (int64, error)
	FindItemIDByName(ctx context.Context, name string) (string, bool, error)
}

type LocationStat struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	StoreID   string   `json:"store_id,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Count     int      `json:"count"`
	AvgPrice  float64  `json:"avg_price"`
	MinPrice  float64  `json:"min_price"`
	MaxPrice  float64  `json:"max_price"`
	Intensity float64  `json:"intensity"`
}

// HeatmapSnapshot is the durable heatmap artifact, keyed by normalized item
// name. Regeneration overwrites; snapshots are never versioned.
type HeatmapSnapshot struct {
	ItemName    string
	WindowDays  int
	GeneratedAt time.Time
	Locations   []LocationStat
}

type SnapshotStore interface {
	UpsertSnapshot(ctx context.Context, snapshot HeatmapSnapshot) error
	GetSnapshot(ctx context.Context, itemName string) (HeatmapSnapshot, error)
}

type Clock interface {
	Now() time.Time
}
