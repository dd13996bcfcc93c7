package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

type PostgresPatientsRepository struct {
	db *sql.DB
}

var _ PatientsRepository = (*PostgresPatientsRepository)(nil)

func NewPostgresPatientsRepository(db *sql.DB) *PostgresPatientsRepository {
	return &PostgresPatientsRepository{db: db}
}

func (r *PostgresPatientsRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	query := `
		SELECT id,
		       first_name,
		       last_name,
		       COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), '') AS date_of_birth,
		       COALESCE(contact, '') AS contact
		FROM patients
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := []domain.Patient{}
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Contact); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *PostgresPatientsRepository) FindByID(ctx context.Context, id int64) (*domain.Patient, error) {
	query := `
		SELECT id,
		       first_name,
		       last_name,
		       COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), '') AS date_of_birth,
		       COALESCE(contact, '') AS contact
		FROM patients
		WHERE id = $1
	`
	var p domain.Patient
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Contact)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *PostgresPatientsRepository) Save(ctx context.Context, patient domain.Patient) (domain.Patient, error) {
	query := `
		INSERT INTO patients (first_name, last_name, date_of_birth, contact)
		VALUES ($1, $2, NULLIF($3, '')::date, NULLIF($4, ''))
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Contact,
	).Scan(&patient.ID)
	if err != nil {
		return domain.Patient{}, fmt.Errorf("failed to save patient: %w", err)
	}
	return patient, nil
}
