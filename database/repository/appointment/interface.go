package appointmentRepo

import (
	"context"
	"time"

	"brightwash/models"
)

// AppointmentRepository persists confirmed appointments. The booking
// coordinator is the only writer; the alert sweep reads but never mutates.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	Cancel(ctx context.Context, id string) error
	EnsureIndexes() error
}
