package repositories

import "errors"

var (
	// ErrNotFound is returned (wrapped) when an id or username does not resolve.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned (wrapped) when an insert violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)
