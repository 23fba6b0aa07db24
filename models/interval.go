package models

import "time"

// BusyInterval is a confirmed, calendar-blocking time range pulled from the
// external calendar. Invariant: Start < End.
type BusyInterval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	SourceID string    `json:"sourceId"` // external calendar event reference
}
