package mastery

import (
	"time"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

// Apply returns rec updated for one answer at time now, and the level
// transition it caused (nil if none).
//
// Unmarked items first move to Learning. While Learning, a correct answer
// adds a point and reaching MaxPoints promotes to Learned; an incorrect
// answer removes a point, never below zero. Learned items only have their
// stats updated.
func Apply(rec progress.Record, correct bool, now time.Time) (progress.Record, *StateTransition) {
	var transition *StateTransition

	if rec.Level == progress.Unmarked {
		transition = &StateTransition{
			From:    progress.Unmarked,
			To:      progress.Learning,
			Trigger: TriggerFirstAttempt,
		}
		rec.Level = progress.Learning
	}

	if rec.Level == progress.Learning {
		if correct {
			rec.Points++
		} else {
			rec.Points = max(0, rec.Points-1)
		}
		if rec.Points >= progress.MaxPoints {
			rec.Points = progress.MaxPoints
			from := progress.Learning
			if transition != nil {
				from = transition.From
			}
			rec.Level = progress.Learned
			transition = &StateTransition{
				From:    from,
				To:      progress.Learned,
				Trigger: TriggerPointsFull,
			}
		}
	}

	rec.Stats = recordOutcome(rec.Stats, correct, now)
	return rec, transition
}

// ForceLearned moves rec straight to Learned with full points and records a
// correct outcome, whatever its prior level.
func ForceLearned(rec progress.Record, now time.Time) (progress.Record, *StateTransition) {
	var transition *StateTransition
	if rec.Level != progress.Learned {
		transition = &StateTransition{
			From:    rec.Level,
			To:      progress.Learned,
			Trigger: TriggerForced,
		}
	}
	rec.Level = progress.Learned
	rec.Points = progress.MaxPoints
	rec.Stats = recordOutcome(rec.Stats, true, now)
	return rec, transition
}

func recordOutcome(s progress.Stats, correct bool, now time.Time) progress.Stats {
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.Difficulty = Difficulty(s, now)
	s.LastPracticed = now
	return s
}
