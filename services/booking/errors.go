package booking

import (
	"fmt"
	"time"
)

// ConflictError means the requested slot was no longer free at commit time.
// Recoverable: the caller should re-fetch availability and pick again.
type ConflictError struct {
	Start time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot at %s is no longer available", e.Start.Format(time.RFC3339))
}

// UpstreamError means an external dependency (calendar, lock store) failed or
// timed out during the commit. The booking is not confirmed; the caller must
// never treat this as success.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
