package models

import "time"

// Appointment represents a confirmed booking record. The external calendar
// holds the authoritative busy interval; this record carries the customer
// details the alert pipeline and reminders need.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	CalendarEventID string    `bson:"calendar_event_id" json:"calendarEventId"` // Event inserted into the external calendar
	CustomerName    string    `bson:"customer_name" json:"customerName"`
	CustomerPhone   string    `bson:"customer_phone" json:"customerPhone"`
	CustomerEmail   string    `bson:"customer_email,omitempty" json:"customerEmail,omitempty"`
	Service         string    `bson:"service" json:"service"`
	Start           time.Time `bson:"start" json:"start"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	Location        string    `bson:"location" json:"location"`
	Status          string    `bson:"status" json:"status"` // "confirmed" or "cancelled"
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// End returns the appointment's computed end time.
func (a Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// CustomerInfo is the customer portion of a booking request.
type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email,omitempty"`
}
