// Package progress owns per-item learning progress. Records are created
// lazily: an item with no record reads as the default record, and callers
// never construct defaults themselves.
package progress

import (
	"fmt"
	"strings"
	"time"
)

// Level is an item's position in the learning lifecycle.
type Level int

const (
	Unmarked Level = iota
	Learning
	Learned
)

// MaxPoints is the points value at which a Learning item becomes Learned.
const MaxPoints = 5

// DefaultDifficulty is the difficulty of an item that has never been answered.
const DefaultDifficulty = 50.0

var levelNames = [...]string{"unmarked", "learning", "learned"}

func (l Level) String() string {
	if l < Unmarked || l > Learned {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	return l >= Unmarked && l <= Learned
}

// ParseLevel parses a level name ("unmarked", "learning", "learned") or its
// numeric form ("0", "1", "2").
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name || s == fmt.Sprint(i) {
			return Level(i), nil
		}
	}
	return Unmarked, fmt.Errorf("unknown level %q", s)
}

// Stats is the answer history of one item.
type Stats struct {
	Correct   int
	Incorrect int
	// LastPracticed is zero when the item has never been practiced.
	LastPracticed time.Time
	// Difficulty is 0-100, higher is harder.
	Difficulty float64
}

// Attempts returns the total number of recorded answers.
func (s Stats) Attempts() int {
	return s.Correct + s.Incorrect
}

// Practiced reports whether the item has ever been answered.
func (s Stats) Practiced() bool {
	return !s.LastPracticed.IsZero()
}

// Record is the progress of a single item.
type Record struct {
	Level  Level
	Points int
	Stats  Stats
}

// Default returns the record every untouched item implicitly has.
func Default() Record {
	return Record{
		Level:  Unmarked,
		Points: 0,
		Stats:  Stats{Difficulty: DefaultDifficulty},
	}
}

// StatsUpdate is a partial update of Stats. Nil fields are left unchanged.
type StatsUpdate struct {
	Correct       *int
	Incorrect     *int
	LastPracticed *time.Time
	Difficulty    *float64
}

// Update is a partial update of a Record. Nil fields are left unchanged, and
// Stats is merged field by field.
type Update struct {
	Level  *Level
	Points *int
	Stats  *StatsUpdate
}

// Apply merges u into r and returns the result.
func (u Update) Apply(r Record) Record {
	if u.Level != nil {
		r.Level = *u.Level
	}
	if u.Points != nil {
		r.Points = *u.Points
	}
	if s := u.Stats; s != nil {
		if s.Correct != nil {
			r.Stats.Correct = *s.Correct
		}
		if s.Incorrect != nil {
			r.Stats.Incorrect = *s.Incorrect
		}
		if s.LastPracticed != nil {
			r.Stats.LastPracticed = *s.LastPracticed
		}
		if s.Difficulty != nil {
			r.Stats.Difficulty = *s.Difficulty
		}
	}
	return r
}
