package locationkey

import (
	"fmt"
	"strings"
)

// Location keys group observations for aggregation. A registered store with
// known coordinates wins over free text so one physical store does not
// fragment into many text variants.

const unknownLocation = "unknown"

// ForStore returns the grouping key for a registered store.
func ForStore(storeID string) string {
	return fmt.Sprintf("store:%s", strings.TrimSpace(storeID))
}

// ForText returns the grouping key for a free-text location. Matching is
// case-insensitive and whitespace-trimmed; empty text collapses to "unknown".
func ForText(location string) string {
	return fmt.Sprintf("text:%s", Normalize(location))
}

// Normalize canonicalizes a free-text location for grouping and display.
func Normalize(location string) string {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if normalized == "" {
		return unknownLocation
	}
	return normalized
}
