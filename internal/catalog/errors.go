package catalog

import "fmt"

// ValidationError indicates a bundle file does not conform to its schema.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog file %s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// VersionError indicates the bundle manifest declares an unsupported version.
type VersionError struct {
	Got  string
	Want string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported catalog version %q (want major %s)", e.Got, e.Want)
}
