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

const doctorColumns = `id, name, specialty, status, created_at`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB, m *metrics.Metrics) repository.DoctorRepository {
	return &doctorRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	start := time.Now()
	query := `
		INSERT INTO doctors (name, specialty, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, doctor.Name, doctor.Specialty, doctor.Status).
		Scan(&doctor.ID, &doctor.CreatedAt)
	r.observe("create_doctor", start, err)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", mapError(err, "doctor"))
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	start := time.Now()
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	r.observe("get_doctor", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", mapError(err, "doctor"))
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByName(ctx context.Context, name string) (*model.Doctor, error) {
	start := time.Now()
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE name = $1 ORDER BY id DESC LIMIT 1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, name)
	r.observe("find_doctor", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor: %w", mapError(err, "doctor"))
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	start := time.Now()
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY id DESC`

	doctors := make([]*model.Doctor, 0)
	err := r.db.SelectContext(ctx, &doctors, query)
	r.observe("list_doctors", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id int64, status model.DoctorStatus) (*model.Doctor, error) {
	start := time.Now()
	query := `UPDATE doctors SET status = $1 WHERE id = $2 RETURNING ` + doctorColumns

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, status, id)
	r.observe("update_doctor_status", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor status: %w", mapError(err, "doctor"))
	}
	return &doctor, nil
}
