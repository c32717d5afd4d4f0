// Package session selects the entries of a practice session and tracks the
// session while it runs.
package session

import (
	"fmt"
	"strings"
)

// Mode is a practice mode.
type Mode string

const (
	// ModeMixed practices Learning items with a few Learned items mixed in
	// for reinforcement.
	ModeMixed Mode = "mixed"
	// ModeMultipleChoice needs a full session of Learning/Learned items.
	ModeMultipleChoice Mode = "multiple-choice"
	// ModeCustom is ModeMixed restricted to a caller-supplied list.
	ModeCustom Mode = "custom"
	// ModePhrases practices complete phrases instead of items.
	ModePhrases Mode = "phrases"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeMixed, ModeMultipleChoice, ModeCustom, ModePhrases}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Source is the reason an entry was included in a session.
type Source string

const (
	SourceLearning     Source = "learning"
	SourceReview       Source = "review"
	SourceCompensation Source = "compensation"
	SourceFallback     Source = "fallback"
	SourcePhrase       Source = "phrase"
)

// Entry is one item or phrase in a session.
type Entry struct {
	ID     string
	Text   string
	Phrase bool
	Source Source
}

const (
	// DefaultSessionSize is the target number of entries per session.
	DefaultSessionSize = 10

	// DefaultReviewCount is the number of Learned items mixed into a session.
	DefaultReviewCount = 2
)

// Config holds the selection quotas.
type Config struct {
	SessionSize int
	ReviewCount int
}

// DefaultConfig returns the default quotas.
func DefaultConfig() Config {
	return Config{
		SessionSize: DefaultSessionSize,
		ReviewCount: DefaultReviewCount,
	}
}
