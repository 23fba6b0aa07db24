package models

// ReminderPayload is the body of a queued reminder task. The task is
// persisted with its fire time so process restarts do not drop sends.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Phone         string `json:"phone"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
