package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntry is returned when answering an entry that is not part
	// of the session.
	ErrUnknownEntry = errors.New("entry is not part of this session")

	// ErrSessionDone is returned when answering after every entry has
	// been answered.
	ErrSessionDone = errors.New("session is finished")
)

// InsufficientItemsError reports that a mode needs more eligible items than
// the learner has.
type InsufficientItemsError struct {
	Mode Mode
	Need int
	Have int
}

func (e *InsufficientItemsError) Error() string {
	return fmt.Sprintf("%s practice needs %d items, only %d available", e.Mode, e.Need, e.Have)
}
