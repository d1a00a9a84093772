package dao

import "errors"

var (
	// ErrConflict is returned when a unique constraint rejects a write.
	// The database is the final arbiter for concurrent registrations.
	ErrConflict = errors.New("unique constraint violation")
	// ErrNotFound is returned on ownership-scoped lookup misses.
	ErrNotFound = errors.New("record not found")
)
