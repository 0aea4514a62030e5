package store

import (
	"errors"
	"fmt"
)

// ErrNotEmpty is returned when seeding a database that already has records.
var ErrNotEmpty = errors.New("database is not empty")

// LoadError reports that the persisted table could not be read. The store
// falls back to an empty table when this happens.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load database, reset to empty: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports that a mutation was applied in memory but could not be
// persisted.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save database: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
