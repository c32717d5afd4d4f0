package session

import "time"

// EntryResult is the per-entry tally shown in the summary.
type EntryResult struct {
	Entry    Entry
	Attempts int
	Correct  int
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID      string
	Mode           Mode
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Results        []EntryResult
}

// BuildSummary tallies the answer log. Results follow session order and
// include unanswered entries with zero attempts.
func BuildSummary(s *Session, now time.Time) *Summary {
	results := make([]EntryResult, len(s.Entries))
	for i, e := range s.Entries {
		results[i].Entry = e
	}

	var total, correct int
	for _, a := range s.answers {
		total++
		if a.Correct {
			correct++
		}
		if i, ok := s.index[a.EntryID]; ok {
			results[i].Attempts++
			if a.Correct {
				results[i].Correct++
			}
		}
	}

	var accuracy float64
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	return &Summary{
		SessionID:      s.ID,
		Mode:           s.Mode,
		Duration:       now.Sub(s.StartedAt),
		TotalQuestions: total,
		TotalCorrect:   correct,
		Accuracy:       accuracy,
		Results:        results,
	}
}
