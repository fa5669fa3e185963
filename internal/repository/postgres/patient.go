package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

const patientColumns = `id, name, age, phone, created_at`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB, m *metrics.Metrics) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	start := time.Now()
	query := `
		INSERT INTO patients (name, age, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, patient.Name, patient.Age, patient.Phone).
		Scan(&patient.ID, &patient.CreatedAt)
	r.observe("create_patient", start, err)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", mapError(err, "patient"))
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	start := time.Now()
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	r.observe("get_patient", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", mapError(err, "patient"))
	}
	return &patient, nil
}

func (r *patientRepository) FindByName(ctx context.Context, name string) (*model.Patient, error) {
	start := time.Now()
	query := `SELECT ` + patientColumns + ` FROM patients WHERE name = $1 ORDER BY id DESC LIMIT 1`

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, name)
	r.observe("find_patient", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to find patient: %w", mapError(err, "patient"))
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	start := time.Now()
	query := `SELECT ` + patientColumns + ` FROM patients`
	var args []interface{}

	if filters != nil && filters.Query != "" {
		query += ` WHERE name ILIKE $1 OR phone ILIKE $1`
		args = append(args, containsPattern(filters.Query))
	}
	query += ` ORDER BY id DESC`

	patients := make([]*model.Patient, 0)
	err := r.db.SelectContext(ctx, &patients, query, args...)
	r.observe("list_patients", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
