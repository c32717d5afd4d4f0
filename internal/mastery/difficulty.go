package mastery

import (
	"time"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

const (
	// stalenessPerDay is the difficulty added per day since last practice.
	stalenessPerDay = 5.0

	// maxStaleness caps the staleness component.
	maxStaleness = 50.0
)

// Difficulty computes the 0-100 difficulty of an item: its error rate as a
// percentage plus a staleness penalty of five per day since it was last
// practiced, capped at 50. Never-practiced items have no staleness.
func Difficulty(s progress.Stats, now time.Time) float64 {
	var errRate float64
	if n := s.Attempts(); n > 0 {
		errRate = float64(s.Incorrect) / float64(n)
	}

	var days float64
	if s.Practiced() && now.After(s.LastPracticed) {
		days = now.Sub(s.LastPracticed).Hours() / 24
	}

	return clamp(errRate*100+min(maxStaleness, days*stalenessPerDay), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
