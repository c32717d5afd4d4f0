package progress

import "fmt"

// PersistError reports that a mutation was applied in memory but could not
// be written to the persister. The in-memory state stays authoritative, so
// callers should surface it as a warning and carry on.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("progress %s: persist failed: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
