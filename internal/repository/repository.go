package repository

import (
	"context"
	"errors"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

// ErrNotFound is returned by FindByID when no row matches.
var ErrNotFound = errors.New("record not found")

// Each service owns one repository. Save assigns the id (BIGSERIAL in
// postgres, a counter in memory) and returns the stored entity.

type PatientsRepository interface {
	FindAll(ctx context.Context) ([]domain.Patient, error)
	FindByID(ctx context.Context, id int64) (*domain.Patient, error)
	Save(ctx context.Context, patient domain.Patient) (domain.Patient, error)
}

type AppointmentsRepository interface {
	FindAll(ctx context.Context) ([]domain.Appointment, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	Save(ctx context.Context, appointment domain.Appointment) (domain.Appointment, error)
}

type MedicalRecordsRepository interface {
	FindAll(ctx context.Context) ([]domain.MedicalRecord, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error)
	Save(ctx context.Context, record domain.MedicalRecord) (domain.MedicalRecord, error)
}
