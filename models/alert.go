package models

import "time"

// AlertRecord marks that a weather alert was dispatched for an appointment at
// a given risk level. At most one record exists per (appointmentId, riskLevel)
// pair; re-alerting requires a strictly higher level.
type AlertRecord struct {
	AppointmentID string    `bson:"appointment_id" json:"appointmentId"`
	RiskLevel     RiskLevel `bson:"risk_level" json:"riskLevel"`
	SentAt        time.Time `bson:"sent_at" json:"sentAt"`
}
