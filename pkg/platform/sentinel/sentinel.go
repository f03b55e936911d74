// Package sentinel holds store-level errors shared by every persistence adapter.
// Services translate them into domain errors; transports never see them directly.
package sentinel

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed is returned when a write collides with a unique constraint.
	ErrAlreadyUsed = errors.New("already used")

	// ErrEmptyCatalog is returned when a derived value needs at least one
	// existing row and the table has none.
	ErrEmptyCatalog = errors.New("table has no rows")
)
