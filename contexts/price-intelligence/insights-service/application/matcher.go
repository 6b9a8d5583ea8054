package application

import (
	"context"
	"strings"

	"pricesaver/contexts/price-intelligence/insights-service/ports"
	"pricesaver/internal/shared/locationkey"
)

const (
	minWindowDays = 1
	maxWindowDays = 365
)

func validWindow(days int) bool {
	return days >= minWindowDays && days <= maxWindowDays
}

// itemMatcher applies the catalog matching rule shared by the resolver and
// the heatmap. An observation linked to a catalog item matches when the query
// resolves to that item. Unlinked observations follow the legacy bootstrap
// behavior: they match every query while the catalog is empty and no query
// once any catalog entry exists. LegacyCatalogMatch keeps that behavior;
// with it disabled, unlinked observations match by recorded item name.
type itemMatcher struct {
	queryName    string
	itemID       string
	itemFound    bool
	catalogEmpty bool
	legacy       bool
}

func newItemMatcher(ctx context.Context, catalog ports.Catalog, query string, legacy bool) (itemMatcher, error) {
	matcher := itemMatcher{
		queryName: strings.TrimSpace(query),
		legacy:    legacy,
	}
	count, err := catalog.CountItems(ctx)
	if err != nil {
		return itemMatcher{}, err
	}
	matcher.catalogEmpty = count == 0
	if !matcher.catalogEmpty {
		itemID, found, err := catalog.FindItemIDByName(ctx, matcher.queryName)
		if err != nil {
			return itemMatcher{}, err
		}
		matcher.itemID = itemID
		matcher.itemFound = found
	}
	return matcher, nil
}

func (m itemMatcher) matches(row ports.ObservationRow) bool {
	if row.ItemID != "" {
		return m.itemFound && row.ItemID == m.itemID
	}
	if m.catalogEmpty {
		return true
	}
	if m.legacy {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row.ItemName), m.queryName)
}

// rowLocation derives the grouping identity for an observation. A registered
// store with known coordinates wins over the free-text location.
func rowLocation(row ports.ObservationRow) (key string, name string, store *ports.StoreRef) {
	if row.Store != nil && row.Store.Lat != nil && row.Store.Lng != nil {
		return locationkey.ForStore(row.Store.StoreID), row.Store.Name, row.Store
	}
	return locationkey.ForText(row.LocationText), locationkey.Normalize(row.LocationText), nil
}
