package export

import "fmt"

// FormatError reports a record whose date or time cannot be turned into a
// point in time. The record may be otherwise valid.
type FormatError struct {
	ID    string
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("appointment %s: cannot export %s %q: %v", e.ID, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
