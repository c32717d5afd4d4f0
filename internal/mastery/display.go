package mastery

import (
	"fmt"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

// Label renders a record's level for the CLI, e.g. "learning 3/5".
func Label(rec progress.Record) string {
	switch rec.Level {
	case progress.Learning:
		return fmt.Sprintf("learning %d/%d", rec.Points, progress.MaxPoints)
	case progress.Learned:
		return "learned"
	case progress.Unmarked:
		return "unmarked"
	default:
		return rec.Level.String()
	}
}

// Accuracy returns the share of correct answers, or 0 with no attempts.
func Accuracy(s progress.Stats) float64 {
	if n := s.Attempts(); n > 0 {
		return float64(s.Correct) / float64(n)
	}
	return 0
}
