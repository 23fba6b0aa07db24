package calendar

import (
	"context"
	"errors"
	"time"

	"brightwash/models"
)

// ErrConflict is returned by InsertEvent when the calendar itself rejects the
// hold as conflicting. The store's own conflict detection is the final
// backstop behind the coordinator's re-check.
var ErrConflict = errors.New("calendar rejected event as conflicting")

// EventInput describes a calendar hold to insert for a confirmed booking.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Location    string
}

// Store is the external calendar holding the business's confirmed busy
// intervals. It is the single source of truth for availability and the only
// mutable shared resource in the booking path.
type Store interface {
	// ListBusyIntervals returns confirmed intervals intersecting [timeMin, timeMax).
	// Events missing either endpoint are excluded rather than failing the fetch.
	ListBusyIntervals(ctx context.Context, timeMin, timeMax time.Time) ([]models.BusyInterval, error)
	// InsertEvent inserts a hold and returns the created event's ID.
	InsertEvent(ctx context.Context, input EventInput) (string, error)
	// DeleteEvent removes a previously inserted hold.
	DeleteEvent(ctx context.Context, eventID string) error
}
