package domain

import "time"

// MedicalRecord is owned by medical-record-service. PatientID is a weak
// reference; CreatedAt is set at construction and never mutated.
type MedicalRecord struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	Diagnostics string    `json:"diagnostics"`
	CreatedAt   time.Time `json:"created_at"`
}
