package entities

import (
	"strings"
	"time"
)

// Item is a catalog entry price observations can link to. The catalog also
// gates the legacy match rule: resolvers treat an empty catalog as
// bootstrap mode.
type Item struct {
	ItemID      string
	Name        string
	Category    string
	Description string
	CreatedAt   time.Time
}

func (i Item) ValidateCreate() bool {
	return strings.TrimSpace(i.Name) != ""
}

// Store is a registered retail location. Coordinates are optional; only a
// store with both coordinates anchors a Location Key.
type Store struct {
	StoreID   string
	Name      string
	Address   string
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
}

func (s Store) ValidateCreate() bool {
	if strings.TrimSpace(s.Name) == "" {
		return false
	}
	// Coordinates come as a pair or not at all.
	return (s.Lat == nil) == (s.Lng == nil)
}

// HasCoordinates reports whether the store can anchor a store-based
// Location Key.
func (s Store) HasCoordinates() bool {
	return s.Lat != nil && s.Lng != nil
}
