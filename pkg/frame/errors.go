package frame

import (
	"errors"
	"fmt"
)

// UsageError reports a misuse of the graph-building surface: a nil catalog
// or source at construction, an unresolvable table name, or an invalid
// define/alias. It is raised synchronously at the offending call, never
// deferred to evaluation time.
type UsageError struct {
	// Op is the operation that failed, e.g. "Alias".
	Op string
	// Name is the column or table name involved, when there is one.
	Name string
	// Err is the underlying cause.
	Err error
}

func (e *UsageError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("frame: %s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("frame: %s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// IsUsageError reports whether err is, or wraps, a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func usageErr(op, name string, err error) *UsageError {
	return &UsageError{Op: op, Name: name, Err: err}
}
