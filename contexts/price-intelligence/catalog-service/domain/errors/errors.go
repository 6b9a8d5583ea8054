package errors

import "errors"

var (
	ErrItemNotFound        = errors.New("catalog item not found")
	ErrStoreNotFound       = errors.New("store not found")
	ErrDuplicateItem       = errors.New("catalog item already exists")
	ErrInvalidCatalogInput = errors.New("invalid catalog input")
)
