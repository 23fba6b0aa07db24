package alertRepo

import (
	"context"

	"brightwash/models"
)

// AlertRecordRepository is the idempotency store for dispatched weather
// alerts. Owned exclusively by the alert sweep; no other component touches it.
type AlertRecordRepository interface {
	// HighestAlertedLevel returns the highest risk level already alerted for
	// the appointment, and whether any alert exists at all.
	HighestAlertedLevel(ctx context.Context, appointmentID string) (models.RiskLevel, bool, error)
	Record(ctx context.Context, rec models.AlertRecord) error
	PurgeForAppointment(ctx context.Context, appointmentID string) error
	EnsureIndexes() error
}
