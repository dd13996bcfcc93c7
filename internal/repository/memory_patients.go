package repository

import (
	"context"
	"sync"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

// MemoryPatientsRepository backs patient-service when the database is
// disabled or unreachable (local dev, unit tests).
type MemoryPatientsRepository struct {
	mu       sync.RWMutex
	patients map[int64]domain.Patient
	nextID   int64
}

var _ PatientsRepository = (*MemoryPatientsRepository)(nil)

func NewMemoryPatientsRepository() *MemoryPatientsRepository {
	return &MemoryPatientsRepository{
		patients: map[int64]domain.Patient{},
		nextID:   1,
	}
}

func (r *MemoryPatientsRepository) FindAll(_ context.Context) ([]domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Patient, 0, len(r.patients))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryPatientsRepository) FindByID(_ context.Context, id int64) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryPatientsRepository) Save(_ context.Context, patient domain.Patient) (domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient.ID = r.nextID
	r.nextID++
	r.patients[patient.ID] = patient
	return patient, nil
}
