/*
errors.go - Error types for the utilization engine and its callers

PURPOSE:
  The engine itself is total: malformed-but-present data becomes data
  (unknown buckets, validation reports, warnings), never an error. The
  sentinels here exist for the layers around the engine - request parsing,
  the fetch collaborator, the cache - so they can classify failures with
  errors.Is.

SEE ALSO:
  - engine.go: the entry point these callers wrap
  - api/handlers.go: maps these onto HTTP status codes
*/
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is returned by callers that refuse an inverted range
	// outright. The engine never returns it; an inverted window enumerates
	// to zero days and yields empty results.
	ErrInvalidWindow = errors.New("invalid window: end before start")

	// ErrNoEmployees is returned by callers when the roster fetch produced
	// nothing to analyze.
	ErrNoEmployees = errors.New("no employees to analyze")
)

// WindowError carries the offending range alongside ErrInvalidWindow.
type WindowError struct {
	Window Window
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("invalid window %s: end before start", e.Window)
}

func (e *WindowError) Unwrap() error { return ErrInvalidWindow }

// IsClientError reports whether the error is the caller's fault (bad input
// rather than an upstream or internal failure).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}
