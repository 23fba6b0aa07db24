package availability

import (
	"context"
	"fmt"
	"time"

	"brightwash/services/calendar"
	"brightwash/utils"

	"go.uber.org/zap"
)

// Service computes bookable start times for a service across the horizon.
type Service interface {
	AvailableSlots(ctx context.Context, service string) ([]time.Time, error)
}

// DefaultAvailabilityService hydrates an IntervalIndex from the calendar
// store and runs the slot generator against it. Read-only: it never mutates
// the calendar. An optional snapshot cache absorbs repeat lookups within
// its short TTL.
type DefaultAvailabilityService struct {
	Calendar  calendar.Store
	Generator *SlotGenerator
	Cache     SnapshotCache
}

// AvailableSlots returns the ordered candidate starts for a service. On a
// calendar fetch failure it returns the error; availability degrades to
// "no slots, try later" at the handler, never to fabricated openings.
// Fetch failures are never cached.
func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, service string) ([]time.Time, error) {
	if s.Cache != nil {
		if slots, ok := s.Cache.Get(ctx, service); ok {
			return slots, nil
		}
	}

	now := time.Now()
	horizonEnd := now.AddDate(0, 0, s.Generator.HorizonDays)

	busy, err := s.Calendar.ListBusyIntervals(ctx, now, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch busy intervals: %w", err)
	}

	idx := NewIntervalIndex(busy)
	slots := s.Generator.Generate(now, service, idx)

	if s.Cache != nil {
		s.Cache.Set(ctx, service, slots)
	}

	utils.GetLogger().Debug("computed availability",
		zap.String("service", service),
		zap.Int("busyIntervals", idx.Len()),
		zap.Int("candidates", len(slots)))

	return slots, nil
}
