// Package mastery applies answer outcomes to progress records: the
// Unmarked -> Learning -> Learned state machine, points and difficulty.
package mastery

import "github.com/Stohl/tsp-skolan-sub000/internal/progress"

// Transition triggers.
const (
	TriggerFirstAttempt = "first-attempt"
	TriggerPointsFull   = "points-full"
	TriggerForced       = "forced"
	TriggerBulk         = "bulk"
)

// StateTransition records a level change for display and event logging.
type StateTransition struct {
	ItemID  string
	From    progress.Level
	To      progress.Level
	Trigger string
}
