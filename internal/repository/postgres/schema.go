package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL CHECK (name <> ''),
		age        INTEGER CHECK (age BETWEEN 1 AND 120),
		phone      TEXT NOT NULL CHECK (phone <> ''),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_name ON patients (name)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL CHECK (name <> ''),
		specialty  TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'available'
		           CHECK (status IN ('available', 'busy', 'on_leave')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_name ON doctors (name)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id           BIGSERIAL PRIMARY KEY,
		patient_id   BIGINT NOT NULL REFERENCES patients (id),
		patient_name TEXT NOT NULL,
		doctor_id    BIGINT NOT NULL REFERENCES doctors (id),
		doctor_name  TEXT NOT NULL,
		appt_date    TEXT NOT NULL,
		appt_time    TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments (appt_date)`,
	`CREATE TABLE IF NOT EXISTS pharmacy_items (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL CHECK (name <> ''),
		price      DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		quantity   BIGINT NOT NULL CHECK (quantity >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS blood_donations (
		id         BIGSERIAL PRIMARY KEY,
		donor      TEXT NOT NULL DEFAULT '',
		blood_type TEXT NOT NULL
		           CHECK (blood_type IN ('A+', 'A-', 'B+', 'B-', 'AB+', 'AB-', 'O+', 'O-')),
		bags       INTEGER NOT NULL CHECK (bags > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the record tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
