package errors

import "errors"

var (
	ErrInvalidWindow    = errors.New("window days out of range")
	ErrInvalidItemQuery = errors.New("item query is required")
	ErrSnapshotNotFound = errors.New("heatmap snapshot not found")
)
