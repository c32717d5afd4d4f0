package progress

import (
	"context"
	"maps"
	"sync"
)

// Persister loads and saves the full set of progress records.
// Save replaces everything previously saved.
type Persister interface {
	Load(ctx context.Context) (map[string]Record, error)
	Save(ctx context.Context, records map[string]Record) error
}

// MemoryPersister keeps the saved records in memory.
type MemoryPersister struct {
	mu      sync.Mutex
	records map[string]Record
	saves   int
}

// NewMemoryPersister creates a persister pre-loaded with records (may be nil).
func NewMemoryPersister(records map[string]Record) *MemoryPersister {
	return &MemoryPersister{records: maps.Clone(records)}
}

func (m *MemoryPersister) Load(_ context.Context) (map[string]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.records), nil
}

func (m *MemoryPersister) Save(_ context.Context, records map[string]Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = maps.Clone(records)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
