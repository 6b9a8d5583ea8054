package errors

import "errors"

var (
	ErrDraftNotFound     = errors.New("draft not found")
	ErrDraftFinalized    = errors.New("draft already finalized")
	ErrInvalidDraftInput = errors.New("invalid draft input")
	ErrStoreNotFound     = errors.New("store not found")
)
