package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"brightwash/models"
	"brightwash/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const callTimeout = 10 * time.Second

// GoogleCalendarStore implements Store against the Google Calendar API. One
// long-lived service client is constructed at startup and reused for every
// call; it is never re-created per request.
type GoogleCalendarStore struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
}

// NewGoogleCalendarStore builds the calendar client from a service-account
// credentials file.
func NewGoogleCalendarStore(ctx context.Context, calendarID, credentialsFile, timezone string) (*GoogleCalendarStore, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar client: %w", err)
	}
	return &GoogleCalendarStore{
		svc:        svc,
		calendarID: calendarID,
		timezone:   timezone,
	}, nil
}

// ListBusyIntervals fetches confirmed events intersecting [timeMin, timeMax).
// Events without both endpoints (all-day markers, malformed entries) are
// skipped; the data-integrity filter must not fail the whole fetch.
func (s *GoogleCalendarStore) ListBusyIntervals(ctx context.Context, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	events, err := s.svc.Events.List(s.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	logger := utils.GetLogger()
	intervals := make([]models.BusyInterval, 0, len(events.Items))
	for _, item := range events.Items {
		if item.Status == "cancelled" {
			continue
		}
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			logger.Warn("skipping calendar event without both endpoints",
				zap.String("eventId", item.Id))
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			logger.Warn("skipping calendar event with unparseable start",
				zap.String("eventId", item.Id), zap.Error(err))
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			logger.Warn("skipping calendar event with unparseable end",
				zap.String("eventId", item.Id), zap.Error(err))
			continue
		}
		if !start.Before(end) {
			continue
		}
		intervals = append(intervals, models.BusyInterval{
			Start:    start,
			End:      end,
			SourceID: item.Id,
		})
	}
	return intervals, nil
}

// InsertEvent inserts a hold into the calendar and returns the event ID. An
// empty ID from the API means the booking is not confirmed.
func (s *GoogleCalendarStore) InsertEvent(ctx context.Context, input EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	ev := &gcal.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
			return "", fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}
	if created == nil || created.Id == "" {
		return "", fmt.Errorf("calendar insert returned no event id")
	}
	return created.Id, nil
}

// DeleteEvent removes a hold from the calendar.
func (s *GoogleCalendarStore) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if err := s.svc.Events.Delete(s.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}
	return nil
}
