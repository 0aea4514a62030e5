package store

import (
	"context"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
)

// RecordStorage defines the persistence backend of a Store. Save always
// receives the full table and replaces whatever was stored before.
type RecordStorage interface {
	// Load returns the persisted records. A backend with nothing persisted
	// returns an empty slice and no error.
	Load(ctx context.Context) ([]flavor.Record, error)
	Save(ctx context.Context, records []flavor.Record) error
	// Clear removes the persisted data.
	Clear(ctx context.Context) error
}
