package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	alertRepo "brightwash/database/repository/alert"
	appointmentRepo "brightwash/database/repository/appointment"
	customerRepo "brightwash/database/repository/customer"
	"brightwash/models"
	"brightwash/services/availability"
	"brightwash/services/calendar"
	"brightwash/services/notification"
	"brightwash/services/tasks"
	"brightwash/utils"
)

// reminderLeadTime is how long before an appointment the reminder fires.
const reminderLeadTime = 24 * time.Hour

// Coordinator validates a requested slot against live availability at commit
// time and performs the calendar insert as one logical step.
type Coordinator interface {
	Commit(ctx context.Context, service string, requestedStart time.Time, customer models.CustomerInfo) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID string) error
	ListUpcoming(ctx context.Context, days int) ([]models.Appointment, error)
}

// DefaultCoordinator implements Coordinator. All collaborators are injected
// at construction; there is no ambient client state.
type DefaultCoordinator struct {
	Calendar         calendar.Store
	Locker           SlotLocker
	Durations        availability.DurationTable
	Appointments     appointmentRepo.AppointmentRepository
	Customers        customerRepo.CustomerRepository
	Notifier         notification.Dispatcher
	Alerts           alertRepo.AlertRecordRepository
	TaskClient       *asynq.Client
	BusinessLocation string
}

// Commit runs check-then-insert: re-fetch the live busy set for the narrow
// window around the requested start, re-check overlap against that snapshot,
// and only then insert. An insert failure or missing event ID means the
// booking is not confirmed. Side effects after a confirmed insert (profile
// merge, confirmation SMS, reminder scheduling) never fail the booking.
func (c *DefaultCoordinator) Commit(ctx context.Context, service string, requestedStart time.Time, customer models.CustomerInfo) (*models.Appointment, error) {
	logger := utils.GetLogger()

	duration := c.Durations.Lookup(service)
	end := requestedStart.Add(duration)

	slotKey := requestedStart.UTC().Format(time.RFC3339)
	acquired, err := c.Locker.Acquire(ctx, slotKey)
	if err != nil {
		return nil, &UpstreamError{Op: "slot lock", Err: err}
	}
	if !acquired {
		// Another commit for this slot is in flight.
		return nil, &ConflictError{Start: requestedStart}
	}
	defer c.Locker.Release(ctx, slotKey)

	// Re-check against the live calendar, not the snapshot that rendered the
	// availability list.
	busy, err := c.Calendar.ListBusyIntervals(ctx, requestedStart, end)
	if err != nil {
		return nil, &UpstreamError{Op: "busy interval re-check", Err: err}
	}
	idx := availability.NewIntervalIndex(busy)
	if idx.Overlaps(requestedStart, end) {
		return nil, &ConflictError{Start: requestedStart}
	}

	eventID, err := c.Calendar.InsertEvent(ctx, calendar.EventInput{
		Summary:     fmt.Sprintf("%s: %s", service, customer.Name),
		Description: fmt.Sprintf("Booked via brightwash for %s (%s)", customer.Name, customer.Phone),
		Start:       requestedStart,
		End:         end,
		Location:    c.BusinessLocation,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrConflict) {
			return nil, &ConflictError{Start: requestedStart}
		}
		return nil, &UpstreamError{Op: "calendar insert", Err: err}
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		CalendarEventID: eventID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		Service:         service,
		Start:           requestedStart,
		DurationMinutes: int(duration / time.Minute),
		Location:        c.BusinessLocation,
		Status:          models.AppointmentStatusConfirmed,
	}

	// The calendar insert is the commit point. A failed appointment write is
	// a partial failure: logged, not rolled back.
	if err := c.Appointments.Create(ctx, appt); err != nil {
		logger.Error("booking confirmed but appointment record failed",
			zap.String("appointmentId", appt.ID),
			zap.String("eventId", eventID),
			zap.Error(err))
	}

	c.runSideEffects(ctx, appt, customer)

	logger.Info("booking committed",
		zap.String("appointmentId", appt.ID),
		zap.String("service", service),
		zap.Time("start", requestedStart))

	return appt, nil
}

// runSideEffects merges the customer profile, queues the confirmation SMS and
// schedules the reminder. Each failure is logged and swallowed.
func (c *DefaultCoordinator) runSideEffects(ctx context.Context, appt *models.Appointment, customer models.CustomerInfo) {
	logger := utils.GetLogger()

	summary := models.AppointmentSummary{
		AppointmentID: appt.ID,
		Service:       appt.Service,
		Start:         appt.Start,
	}
	if err := c.Customers.MergeAppointment(ctx, customer, summary); err != nil {
		logger.Warn("customer profile merge failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	confirmBody := fmt.Sprintf("Your %s is confirmed for %s. See you then!",
		appt.Service, appt.Start.Format("Mon Jan 2 at 3:04 PM"))
	if _, err := c.Notifier.SendSMS(ctx, customer.Phone, confirmBody); err != nil {
		logger.Warn("booking confirmation sms failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	fireAt := appt.Start.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		Phone:         customer.Phone,
		Body: fmt.Sprintf("Reminder: your %s is tomorrow at %s.",
			appt.Service, appt.Start.Format("3:04 PM")),
		FireDate: fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		logger.Warn("failed to build reminder task",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	if _, err := c.TaskClient.Enqueue(task, opts...); err != nil {
		logger.Warn("failed to enqueue reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// Cancel removes the calendar hold, marks the appointment cancelled and
// purges its alert records.
func (c *DefaultCoordinator) Cancel(ctx context.Context, appointmentID string) error {
	logger := utils.GetLogger()

	appt, err := c.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("appointment %s not found: %w", appointmentID, err)
	}
	if appt.Status == models.AppointmentStatusCancelled {
		return nil
	}

	if appt.CalendarEventID != "" {
		if err := c.Calendar.DeleteEvent(ctx, appt.CalendarEventID); err != nil {
			return &UpstreamError{Op: "calendar delete", Err: err}
		}
	}

	if err := c.Appointments.Cancel(ctx, appointmentID); err != nil {
		return fmt.Errorf("failed to mark appointment cancelled: %w", err)
	}

	if err := c.Alerts.PurgeForAppointment(ctx, appointmentID); err != nil {
		logger.Warn("failed to purge alert records for cancelled appointment",
			zap.String("appointmentId", appointmentID), zap.Error(err))
	}

	logger.Info("appointment cancelled", zap.String("appointmentId", appointmentID))
	return nil
}

// ListUpcoming returns confirmed appointments starting within the next N days.
func (c *DefaultCoordinator) ListUpcoming(ctx context.Context, days int) ([]models.Appointment, error) {
	now := time.Now()
	return c.Appointments.ListUpcoming(ctx, now, now.AddDate(0, 0, days))
}
