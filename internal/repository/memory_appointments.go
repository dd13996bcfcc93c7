package repository

import (
	"context"
	"sync"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

type MemoryAppointmentsRepository struct {
	mu           sync.RWMutex
	appointments []domain.Appointment
	nextID       int64
}

var _ AppointmentsRepository = (*MemoryAppointmentsRepository)(nil)

func NewMemoryAppointmentsRepository() *MemoryAppointmentsRepository {
	return &MemoryAppointmentsRepository{nextID: 1}
}

func (r *MemoryAppointmentsRepository) FindAll(_ context.Context) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out, nil
}

func (r *MemoryAppointmentsRepository) FindByPatientID(_ context.Context, patientID int64) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Appointment{}
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryAppointmentsRepository) Save(_ context.Context, appointment domain.Appointment) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, appointment)
	return appointment, nil
}
