package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brightwash/models"
	"brightwash/services/calendar"
)

type countingCalendar struct {
	mu    sync.Mutex
	busy  []models.BusyInterval
	err   error
	calls int
}

func (c *countingCalendar) ListBusyIntervals(ctx context.Context, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.busy, nil
}

func (c *countingCalendar) InsertEvent(ctx context.Context, input calendar.EventInput) (string, error) {
	return "", errors.New("not implemented")
}

func (c *countingCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	return errors.New("not implemented")
}

type mapSnapshotCache struct {
	entries map[string][]time.Time
}

func newMapSnapshotCache() *mapSnapshotCache {
	return &mapSnapshotCache{entries: make(map[string][]time.Time)}
}

func (c *mapSnapshotCache) Get(ctx context.Context, service string) ([]time.Time, bool) {
	slots, ok := c.entries[service]
	return slots, ok
}

func (c *mapSnapshotCache) Set(ctx context.Context, service string, slots []time.Time) {
	c.entries[service] = slots
}

func TestAvailableSlotsServesRepeatLookupsFromCache(t *testing.T) {
	cal := &countingCalendar{}
	svc := &DefaultAvailabilityService{
		Calendar:  cal,
		Generator: testGenerator(),
		Cache:     newMapSnapshotCache(),
	}

	first, err := svc.AvailableSlots(context.Background(), "Express Wash")
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	second, err := svc.AvailableSlots(context.Background(), "Express Wash")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}

	if cal.calls != 1 {
		t.Fatalf("calendar fetched %d times, want 1", cal.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("cached lookup returned %d slots, want %d", len(second), len(first))
	}
}

func TestAvailableSlotsCachesPerService(t *testing.T) {
	cal := &countingCalendar{}
	svc := &DefaultAvailabilityService{
		Calendar:  cal,
		Generator: testGenerator(),
		Cache:     newMapSnapshotCache(),
	}

	if _, err := svc.AvailableSlots(context.Background(), "Express Wash"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if _, err := svc.AvailableSlots(context.Background(), "Full Detail"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if cal.calls != 2 {
		t.Fatalf("calendar fetched %d times, want one per service", cal.calls)
	}
}

func TestAvailableSlotsFetchFailureIsNotCached(t *testing.T) {
	cal := &countingCalendar{err: errors.New("calendar api 500")}
	cache := newMapSnapshotCache()
	svc := &DefaultAvailabilityService{
		Calendar:  cal,
		Generator: testGenerator(),
		Cache:     cache,
	}

	if _, err := svc.AvailableSlots(context.Background(), "Express Wash"); err == nil {
		t.Fatalf("fetch failure must surface")
	}
	if len(cache.entries) != 0 {
		t.Fatalf("failed lookup left a cache entry")
	}

	// The store recovers; the next lookup recomputes rather than replaying
	// the failure.
	cal.mu.Lock()
	cal.err = nil
	cal.mu.Unlock()
	if _, err := svc.AvailableSlots(context.Background(), "Express Wash"); err != nil {
		t.Fatalf("recovered lookup failed: %v", err)
	}
	if cal.calls != 2 {
		t.Fatalf("calendar fetched %d times, want 2", cal.calls)
	}
}

func TestAvailableSlotsWorksWithoutCache(t *testing.T) {
	cal := &countingCalendar{}
	svc := &DefaultAvailabilityService{Calendar: cal, Generator: testGenerator()}

	if _, err := svc.AvailableSlots(context.Background(), "Express Wash"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if _, err := svc.AvailableSlots(context.Background(), "Express Wash"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if cal.calls != 2 {
		t.Fatalf("calendar fetched %d times, want 2 without a cache", cal.calls)
	}
}
