package availability

import (
	"time"
)

// halfHourMaxDuration is the longest service duration that still gets
// half-hour candidate starts; longer services stay on full hours.
const halfHourMaxDuration = 90 * time.Minute

// DurationTable maps service names to their duration in minutes. Lookup
// never fails: unknown services get the default.
type DurationTable struct {
	Entries        map[string]int
	DefaultMinutes int
}

// Lookup returns the duration for a service, falling back to the default for
// unknown names or malformed entries.
func (t DurationTable) Lookup(service string) time.Duration {
	if minutes, ok := t.Entries[service]; ok && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return time.Duration(t.DefaultMinutes) * time.Minute
}

// BusinessHours defines the booking window for a working day. Candidate
// starts are generated from OpenHour up to (not including) LastStartHour;
// a candidate's end must not cross HardCloseHour. The LunchHour full-hour
// start is skipped.
type BusinessHours struct {
	OpenHour      int
	LastStartHour int
	HardCloseHour int
	LunchHour     int
}

// SlotGenerator produces candidate start times across a horizon, filtered by
// business-hours rules and busy-interval overlap. Generation is a pure
// function of (now, service, index): unchanged inputs yield identical output.
type SlotGenerator struct {
	Hours       BusinessHours
	Durations   DurationTable
	HorizonDays int
	Location    *time.Location
}

// Generate returns the ordered, deduplicated candidate starts for a service
// across the horizon, given the current busy-interval index.
func (g *SlotGenerator) Generate(now time.Time, service string, idx *IntervalIndex) []time.Time {
	duration := g.Durations.Lookup(service)
	halfHours := duration <= halfHourMaxDuration

	loc := g.Location
	if loc == nil {
		loc = now.Location()
	}
	now = now.In(loc)
	dayZero := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var slots []time.Time
	for d := 0; d < g.HorizonDays; d++ {
		day := dayZero.AddDate(0, 0, d)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for hour := g.Hours.OpenHour; hour < g.Hours.LastStartHour; hour++ {
			if hour != g.Hours.LunchHour {
				start := day.Add(time.Duration(hour) * time.Hour)
				if g.accepts(start, duration, now, day, idx) {
					slots = append(slots, start)
				}
			}
			if halfHours {
				start := day.Add(time.Duration(hour)*time.Hour + 30*time.Minute)
				if g.accepts(start, duration, now, day, idx) {
					slots = append(slots, start)
				}
			}
		}
	}
	return slots
}

// accepts applies the per-candidate rejection rules: already past, end
// crossing the hard close, or overlapping a busy interval.
func (g *SlotGenerator) accepts(start time.Time, duration time.Duration, now, day time.Time, idx *IntervalIndex) bool {
	if !start.After(now) {
		return false
	}
	end := start.Add(duration)
	hardClose := day.Add(time.Duration(g.Hours.HardCloseHour) * time.Hour)
	if end.After(hardClose) {
		return false
	}
	return !idx.Overlaps(start, end)
}
