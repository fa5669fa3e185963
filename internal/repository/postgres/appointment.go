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

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	start := time.Now()
	query := `
		INSERT INTO appointments (patient_id, patient_name, doctor_id, doctor_name, appt_date, appt_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		appt.PatientID,
		appt.PatientName,
		appt.DoctorID,
		appt.DoctorName,
		appt.Date,
		appt.Time,
	).Scan(&appt.ID, &appt.CreatedAt)
	r.observe("create_appointment", start, err)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", mapError(err, "appointment"))
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	start := time.Now()
	query := `
		SELECT id, patient_id, patient_name, doctor_id, doctor_name, appt_date, appt_time, created_at
		FROM appointments`
	var args []interface{}

	if filters != nil && filters.Date != "" {
		query += ` WHERE appt_date = $1`
		args = append(args, filters.Date)
	}
	query += ` ORDER BY id DESC`

	appointments := make([]*model.Appointment, 0)
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	r.observe("list_appointments", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
