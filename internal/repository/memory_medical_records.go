package repository

import (
	"context"
	"sync"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

type MemoryMedicalRecordsRepository struct {
	mu      sync.RWMutex
	records []domain.MedicalRecord
	nextID  int64
}

var _ MedicalRecordsRepository = (*MemoryMedicalRecordsRepository)(nil)

func NewMemoryMedicalRecordsRepository() *MemoryMedicalRecordsRepository {
	return &MemoryMedicalRecordsRepository{nextID: 1}
}

func (r *MemoryMedicalRecordsRepository) FindAll(_ context.Context) ([]domain.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MedicalRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryMedicalRecordsRepository) FindByPatientID(_ context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.MedicalRecord{}
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryMedicalRecordsRepository) Save(_ context.Context, record domain.MedicalRecord) (domain.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	r.nextID++
	r.records = append(r.records, record)
	return record, nil
}
