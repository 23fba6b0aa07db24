package availability

import (
	"sort"
	"time"

	"brightwash/models"
)

// IntervalIndex holds the busy time ranges for the business calendar and
// answers overlap queries. It is rebuilt from the external calendar on each
// availability request; the calendar remains authoritative.
type IntervalIndex struct {
	intervals []models.BusyInterval
}

// NewIntervalIndex builds an index from raw calendar intervals. Intervals
// without both endpoints, or with start >= end, are dropped rather than
// failing the build.
func NewIntervalIndex(raw []models.BusyInterval) *IntervalIndex {
	intervals := make([]models.BusyInterval, 0, len(raw))
	for _, iv := range raw {
		if iv.Start.IsZero() || iv.End.IsZero() {
			continue
		}
		if !iv.Start.Before(iv.End) {
			continue
		}
		intervals = append(intervals, iv)
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return &IntervalIndex{intervals: intervals}
}

// Overlaps reports whether [candidateStart, candidateEnd) intersects any busy
// interval. Intervals are half-open: touching endpoints do not overlap.
func (idx *IntervalIndex) Overlaps(candidateStart, candidateEnd time.Time) bool {
	for _, iv := range idx.intervals {
		if candidateStart.Before(iv.End) && candidateEnd.After(iv.Start) {
			return true
		}
		// Sorted by start; nothing later can reach back before candidateEnd.
		if !iv.Start.Before(candidateEnd) {
			break
		}
	}
	return false
}

// Len returns the number of indexed intervals.
func (idx *IntervalIndex) Len() int {
	return len(idx.intervals)
}
