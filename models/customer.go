package models

import "time"

// AppointmentSummary is the slice of an appointment merged into a customer
// profile's history.
type AppointmentSummary struct {
	AppointmentID string    `bson:"appointment_id" json:"appointmentId"`
	Service       string    `bson:"service" json:"service"`
	Start         time.Time `bson:"start" json:"start"`
}

// CustomerProfile aggregates a customer's booking history, keyed by phone.
type CustomerProfile struct {
	Phone        string               `bson:"phone" json:"phone"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email,omitempty" json:"email,omitempty"`
	Appointments []AppointmentSummary `bson:"appointments" json:"appointments"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}
