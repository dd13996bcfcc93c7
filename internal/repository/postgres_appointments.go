package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

type PostgresAppointmentsRepository struct {
	db *sql.DB
}

var _ AppointmentsRepository = (*PostgresAppointmentsRepository)(nil)

func NewPostgresAppointmentsRepository(db *sql.DB) *PostgresAppointmentsRepository {
	return &PostgresAppointmentsRepository{db: db}
}

func (r *PostgresAppointmentsRepository) FindAll(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, scheduled_at, patient_id FROM appointments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *PostgresAppointmentsRepository) FindByPatientID(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, scheduled_at, patient_id FROM appointments WHERE patient_id = $1 ORDER BY id`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by patient: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *PostgresAppointmentsRepository) Save(ctx context.Context, appointment domain.Appointment) (domain.Appointment, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO appointments (scheduled_at, patient_id) VALUES ($1, $2) RETURNING id`,
		appointment.ScheduledAt,
		appointment.PatientID,
	).Scan(&appointment.ID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("failed to save appointment: %w", err)
	}
	return appointment, nil
}

func scanAppointments(rows *sql.Rows) ([]domain.Appointment, error) {
	appointments := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.ScheduledAt, &a.PatientID); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
