package progress

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Store holds one progress record per touched item and persists the full
// set after every mutation. Writes are serialized and each one completes
// before the next read or write proceeds.
type Store struct {
	mu        sync.RWMutex
	records   map[string]Record
	persister Persister
}

// Open loads all records from p. A nil persister gives a memory-only store.
func Open(ctx context.Context, p Persister) (*Store, error) {
	s := &Store{records: make(map[string]Record), persister: p}
	if p == nil {
		return s, nil
	}

	loaded, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	for id, r := range loaded {
		s.records[id] = r
	}
	return s, nil
}

// Get returns the record for id, or Default() if the item was never touched.
func (s *Store) Get(id string) Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[id]; ok {
		return r
	}
	return Default()
}

// Has reports whether id has an explicit record.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok
}

// Set merges u into the record for id and persists the store.
// On a persist failure the merged record is still kept and returned together
// with a *PersistError.
func (s *Store) Set(ctx context.Context, id string, u Update) (Record, error) {
	return s.Modify(ctx, id, u.Apply)
}

// Modify replaces the record for id with fn(current) and persists the store.
// fn runs under the store lock and must not call back into the store.
func (s *Store) Modify(ctx context.Context, id string, fn func(Record) Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[id]
	if !ok {
		cur = Default()
	}
	next := fn(cur)
	s.records[id] = next

	return next, s.persistLocked(ctx, "set")
}

// BulkSet applies the same level (and points, if non-nil) to every id as one
// mutation with a single persist. Learned always carries MaxPoints. Stats are
// left untouched.
func (s *Store) BulkSet(ctx context.Context, ids []string, level Level, points *int) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		r, ok := s.records[id]
		if !ok {
			r = Default()
		}
		r.Level = level
		switch {
		case level == Learned:
			r.Points = MaxPoints
		case points != nil:
			r.Points = *points
		}
		s.records[id] = r
	}

	return s.persistLocked(ctx, "bulk-set")
}

// Snapshot returns a copy of all explicit records.
func (s *Store) Snapshot() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.records)
}

// Counts returns how many explicit records sit at each level.
func (s *Store) Counts() map[Level]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Level]int, 3)
	for _, r := range s.records {
		counts[r.Level]++
	}
	return counts
}

// AtLevel returns the set of item IDs whose record is at level l.
func (s *Store) AtLevel(l Level) map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool)
	for id, r := range s.records {
		if r.Level == l {
			out[id] = true
		}
	}
	return out
}

func (s *Store) persistLocked(ctx context.Context, op string) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, maps.Clone(s.records)); err != nil {
		return &PersistError{Op: op, Err: err}
	}
	return nil
}
