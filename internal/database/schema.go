package database

import (
	"database/sql"
	"fmt"
)

// Each service owns exactly one table; ids are assigned by the store.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id            BIGSERIAL PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		date_of_birth DATE,
		contact       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id           BIGSERIAL PRIMARY KEY,
		scheduled_at TIMESTAMPTZ NOT NULL,
		patient_id   BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments (patient_id)`,
	`CREATE TABLE IF NOT EXISTS medical_records (
		id          BIGSERIAL PRIMARY KEY,
		patient_id  BIGINT NOT NULL,
		diagnostics TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_patient_id ON medical_records (patient_id)`,
}

// EnsureSchema creates the tables a service needs if they are missing.
// patient_id columns are plain BIGINTs: the referenced patient lives in
// another service's database, so there is no foreign key to declare.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
