package session

import "time"

// Record appends an answer for entryID to the log. Answering the current
// entry advances the session; answering an earlier entry again is logged
// without moving. It returns ErrUnknownEntry for entries outside the session
// and ErrSessionDone once every entry has been answered.
func (s *Session) Record(entryID string, correct bool, at time.Time) (Answer, error) {
	if s.Done() {
		return Answer{}, ErrSessionDone
	}
	e, ok := s.Entry(entryID)
	if !ok {
		return Answer{}, ErrUnknownEntry
	}

	a := Answer{EntryID: entryID, Phrase: e.Phrase, Correct: correct, At: at}
	s.answers = append(s.answers, a)

	if s.Entries[s.Current].ID == entryID {
		s.Current++
	}
	return a, nil
}

// Skip advances past the current entry without logging an answer.
func (s *Session) Skip() bool {
	if s.Done() {
		return false
	}
	s.Current++
	return true
}
