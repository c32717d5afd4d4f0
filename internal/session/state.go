package session

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one entry in the session answer log.
type Answer struct {
	EntryID string
	Phrase  bool
	Correct bool
	At      time.Time
}

// Session is one bounded practice run. It is owned by a single caller and
// is not safe for concurrent use.
type Session struct {
	ID        string
	Mode      Mode
	Seed      int64
	Entries   []Entry
	StartedAt time.Time

	// Current is the index of the next entry to answer.
	Current int

	answers []Answer
	index   map[string]int
}

// New creates a session over the selected entries with a fresh UUID.
func New(mode Mode, sel Selection, seed int64, now time.Time) *Session {
	return NewWithID(uuid.NewString(), mode, sel, seed, now)
}

// NewWithID is New with a caller-chosen session ID.
func NewWithID(id string, mode Mode, sel Selection, seed int64, now time.Time) *Session {
	s := &Session{
		ID:        id,
		Mode:      mode,
		Seed:      seed,
		Entries:   sel.Entries,
		StartedAt: now,
		index:     make(map[string]int, len(sel.Entries)),
	}
	for i, e := range s.Entries {
		if _, dup := s.index[e.ID]; !dup {
			s.index[e.ID] = i
		}
	}
	return s
}

// Len returns the number of entries.
func (s *Session) Len() int {
	return len(s.Entries)
}

// Done reports whether every entry has been answered.
func (s *Session) Done() bool {
	return s.Current >= len(s.Entries)
}

// Next returns the entry to present next.
func (s *Session) Next() (Entry, bool) {
	if s.Done() {
		return Entry{}, false
	}
	return s.Entries[s.Current], true
}

// Entry returns the session entry with the given ID.
func (s *Session) Entry(id string) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.Entries[i], true
}

// Answers returns a copy of the answer log.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}
