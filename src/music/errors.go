package music

import "errors"

var (
	// ErrNotFound is returned when an entity id has no matching row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a create would violate a uniqueness
	// constraint, e.g. two artists or genres with the same name.
	ErrDuplicate = errors.New("already exists")
)
