package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
	"pricesaver/contexts/price-intelligence/insights-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type observationJoinRow struct {
	ObservationID string     `gorm:"column:observation_id"`
	ItemID        string     `gorm:"column:item_id"`
	ItemName      string     `gorm:"column:item_name"`
	LocationText  string     `gorm:"column:location_text"`
	Amount        float64    `gorm:"column:amount"`
	SubmittedAt   time.Time  `gorm:"column:submitted_at"`
	StoreID       *string    `gorm:"column:joined_store_id"`
	StoreName     *string    `gorm:"column:store_name"`
	Lat           *float64   `gorm:"column:lat"`
	Lng           *float64   `gorm:"column:lng"`
}

func (r *Repository) ListApprovedSince(ctx context.Context, cutoff time.Time) ([]ports.ObservationRow, error) {
	var rows []observationJoinRow
	err := r.db.WithContext(ctx).
		Table("price_observations AS o").
		Select("o.observation_id, o.item_id, o.item_name, o.location_text, o.amount, o.submitted_at, "+
			"s.store_id AS joined_store_id, s.name AS store_name, s.lat, s.lng").
		Joins("LEFT JOIN stores s ON s.store_id = o.store_id").
		Where("o.status = ?", "approved").
		Where("o.submitted_at >= ?", cutoff.UTC()).
		Order("o.submitted_at DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.ObservationRow, 0, len(rows))
	for _, row := range rows {
		item := ports.ObservationRow{
			ObservationID: row.ObservationID,
			ItemID:        row.ItemID,
			ItemName:      row.ItemName,
			LocationText:  row.LocationText,
			Amount:        row.Amount,
			SubmittedAt:   row.SubmittedAt.UTC(),
		}
		if row.StoreID != nil {
			ref := ports.StoreRef{StoreID: *row.StoreID, Lat: row.Lat, Lng: row.Lng}
			if row.StoreName != nil {
				ref.Name = *row.StoreName
			}
			item.Store = &ref
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("catalog_items").
		Count(&count).
		Error
	return count, err
}

func (r *Repository) FindItemIDByName(ctx context.Context, name string) (string, bool, error) {
	var row struct {
		ItemID string `gorm:"column:item_id"`
	}
	err := r.db.WithContext(ctx).
		Table("catalog_items").
		Select("item_id").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.ItemID, true, nil
}

func (r *Repository) UpsertSnapshot(ctx context.Context, snapshot ports.HeatmapSnapshot) error {
	locations, err := json.Marshal(snapshot.Locations)
	if err != nil {
		return err
	}
	row := snapshotModel{
		ItemName:    snapshot.ItemName,
		WindowDays:  snapshot.WindowDays,
		GeneratedAt: snapshot.GeneratedAt.UTC(),
		Locations:   locations,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"window_days",
				"generated_at",
				"locations",
			}),
		}).
		Create(&row).
		Error
}

func (r *Repository) GetSnapshot(ctx context.Context, itemName string) (ports.HeatmapSnapshot, error) {
	var row snapshotModel
	err := r.db.WithContext(ctx).
		Where("item_name = ?", strings.ToLower(strings.TrimSpace(itemName))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.HeatmapSnapshot{}, domainerrors.ErrSnapshotNotFound
		}
		return ports.HeatmapSnapshot{}, err
	}

	var locations []ports.LocationStat
	if len(row.Locations) > 0 {
		if err := json.Unmarshal(row.Locations, &locations); err != nil {
			return ports.HeatmapSnapshot{}, err
		}
	}
	return ports.HeatmapSnapshot{
		ItemName:    row.ItemName,
		WindowDays:  row.WindowDays,
		GeneratedAt: row.GeneratedAt.UTC(),
		Locations:   locations,
	}, nil
}

type snapshotModel struct {
	ItemName    string    `gorm:"column:item_name;primaryKey"`
	WindowDays  int       `gorm:"column:window_days"`
	GeneratedAt time.Time `gorm:"column:generated_at"`
	Locations   []byte    `gorm:"column:locations"`
}

func (snapshotModel) TableName() string {
	return "heatmap_snapshots"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
