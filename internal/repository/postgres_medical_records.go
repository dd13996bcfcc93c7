package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

type PostgresMedicalRecordsRepository struct {
	db *sql.DB
}

var _ MedicalRecordsRepository = (*PostgresMedicalRecordsRepository)(nil)

func NewPostgresMedicalRecordsRepository(db *sql.DB) *PostgresMedicalRecordsRepository {
	return &PostgresMedicalRecordsRepository{db: db}
}

func (r *PostgresMedicalRecordsRepository) FindAll(ctx context.Context) ([]domain.MedicalRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, patient_id, diagnostics, created_at FROM medical_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	defer rows.Close()
	return scanMedicalRecords(rows)
}

func (r *PostgresMedicalRecordsRepository) FindByPatientID(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, patient_id, diagnostics, created_at FROM medical_records WHERE patient_id = $1 ORDER BY id`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records by patient: %w", err)
	}
	defer rows.Close()
	return scanMedicalRecords(rows)
}

func (r *PostgresMedicalRecordsRepository) Save(ctx context.Context, record domain.MedicalRecord) (domain.MedicalRecord, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO medical_records (patient_id, diagnostics, created_at) VALUES ($1, $2, $3) RETURNING id`,
		record.PatientID,
		record.Diagnostics,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return domain.MedicalRecord{}, fmt.Errorf("failed to save medical record: %w", err)
	}
	return record, nil
}

func scanMedicalRecords(rows *sql.Rows) ([]domain.MedicalRecord, error) {
	records := []domain.MedicalRecord{}
	for rows.Next() {
		var rec domain.MedicalRecord
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.Diagnostics, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medical record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
