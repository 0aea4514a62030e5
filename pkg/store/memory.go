package store

import (
	"context"
	"sync"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
)

// MemoryStorage keeps the persisted records in memory. It is used by tests and
// dry runs.
type MemoryStorage struct {
	mu      sync.Mutex
	records []flavor.Record
	saves   int

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewMemoryStorage returns a backend pre-populated with records.
func NewMemoryStorage(records ...flavor.Record) *MemoryStorage {
	return &MemoryStorage{records: append([]flavor.Record(nil), records...)}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]flavor.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]flavor.Record(nil), m.records...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, records []flavor.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = append([]flavor.Record(nil), records...)
	m.saves++
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// Saved returns what the last successful Save stored.
func (m *MemoryStorage) Saved() []flavor.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]flavor.Record(nil), m.records...)
}

// Saves returns the number of successful Save calls.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
