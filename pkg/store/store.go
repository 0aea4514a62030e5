package store

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	storecsv "github.com/OFFIS-RIT/flavor/backend/pkg/store/csv"
)

// Store is the session-owned table of flavor records. Every mutation is
// written through to the backend before the call returns.
//
// A failed write leaves the mutation in memory and returns a *SaveError; the
// in-memory table stays authoritative until the next successful save.
type Store struct {
	mu      sync.RWMutex
	table   *flavor.Table
	backend RecordStorage
}

// ImportResult summarizes a merge.
type ImportResult struct {
	// Accepted is the number of valid rows in the source.
	Accepted int `json:"accepted"`
	// Added is the number of rows that were not present before.
	Added int `json:"added"`
	Total int `json:"total"`
}

// AddResult summarizes a smart add.
type AddResult struct {
	flavor.Inference
	Added int `json:"added"`
	Total int `json:"total"`
}

// New creates an empty store over the given backend. Call Load to read the
// persisted records.
func New(backend RecordStorage) *Store {
	return &Store{
		table:   flavor.NewTable(),
		backend: backend,
	}
}

// Load replaces the table with the persisted records. When the backend fails
// the table is reset to empty and a *LoadError is returned.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.backend.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.table = flavor.NewTable()
		return &LoadError{Err: err}
	}

	valid := make([]flavor.Record, 0, len(records))
	for _, r := range records {
		if r.IsEmpty() {
			continue
		}
		valid = append(valid, r)
	}
	s.table = flavor.NewTable(valid...)
	logger.Debug("Loaded flavor database", "records", s.table.Len())
	return nil
}

// Records returns a copy of all records in insertion order.
func (s *Store) Records() []flavor.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Records()
}

// Snapshot returns an independent copy of the table for read paths.
func (s *Store) Snapshot() *flavor.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}

// Save writes the full table to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

// saveLocked expects s.mu to be held. An empty table is never written, the
// backing file only disappears through Clear.
func (s *Store) saveLocked(ctx context.Context) error {
	if s.table.Len() == 0 {
		return nil
	}
	if err := s.backend.Save(ctx, s.table.Records()); err != nil {
		logger.Error("Failed to save flavor database", "err", err)
		return &SaveError{Err: err}
	}
	logger.Debug("Saved flavor database", "records", s.table.Len())
	return nil
}

// Import merges records into the table. Rows with an empty ingredient are
// dropped, duplicates collapse.
func (s *Store) Import(ctx context.Context, records []flavor.Record) (ImportResult, error) {
	valid := make([]flavor.Record, 0, len(records))
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		valid = append(valid, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := s.table.Add(valid...)
	res := ImportResult{Accepted: len(valid), Added: added, Total: s.table.Len()}
	if err := s.saveLocked(ctx); err != nil {
		return res, err
	}
	logger.Info("Imported flavor records", "accepted", res.Accepted, "added", res.Added, "total", res.Total)
	return res, nil
}

// SmartAdd infers records from partial input and merges them. Inference
// failures leave the table untouched.
func (s *Store) SmartAdd(ctx context.Context, ingredient, compound, descriptor string) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inf, err := flavor.Infer(s.table, ingredient, compound, descriptor)
	if err != nil {
		return AddResult{}, err
	}

	added := s.table.Add(inf.Records...)
	res := AddResult{Inference: inf, Added: added, Total: s.table.Len()}
	if err := s.saveLocked(ctx); err != nil {
		return res, err
	}
	logger.Info("Added flavor records", "inferred", inf.Inferred, "added", added)
	return res, nil
}

// Seed fills an empty table with records. It fails with ErrNotEmpty when the
// table already has data.
func (s *Store) Seed(ctx context.Context, records []flavor.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table.Len() > 0 {
		return 0, ErrNotEmpty
	}
	s.table = flavor.NewTable()
	for _, r := range records {
		if r.Valid() {
			s.table.Add(r)
		}
	}
	if err := s.saveLocked(ctx); err != nil {
		return s.table.Len(), err
	}
	return s.table.Len(), nil
}

// Clear empties the table and removes the persisted data.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = flavor.NewTable()
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	logger.Info("Cleared flavor database")
	return nil
}

// Export writes the full table in the backing file format: BOM-prefixed
// UTF-8 CSV with the given header.
func (s *Store) Export(w io.Writer, header []string) error {
	s.mu.RLock()
	records := s.table.Records()
	s.mu.RUnlock()

	if len(header) == 0 {
		header = flavor.Header("")
	}
	return storecsv.Encode(w, header, records)
}
