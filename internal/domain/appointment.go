package domain

import "time"

// Appointment is owned by appointment-service. PatientID is a weak
// reference into patient-service, checked once at creation time.
type Appointment struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PatientID   int64     `json:"patient_id"`
}
