package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-records/internal/aggcache"
	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type AppointmentService interface {
	BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error)
	ListAppointments(ctx context.Context, date string) ([]*model.Appointment, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	validator   validator.Validator
	cache       *aggcache.Cache
	events      event.Emitter
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	v validator.Validator,
	cache *aggcache.Cache,
	events event.Emitter,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		validator:   v,
		cache:       cache,
		events:      events,
		logger:      log,
		metrics:     m,
	}
}

// BookAppointment links an existing patient and doctor at a date and time.
// Overlapping bookings are accepted.
func (s *Service) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	req.PatientName = strings.TrimSpace(req.PatientName)
	req.DoctorName = strings.TrimSpace(req.DoctorName)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordRejected(model.CollectionAppointments)
		return nil, fmt.Errorf("invalid appointment data: %w", err)
	}

	patient, err := s.resolvePatient(ctx, req)
	if err != nil {
		return nil, err
	}
	doctor, err := s.resolveDoctor(ctx, req)
	if err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        req.Date,
		Time:        req.Time,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.metrics.RecordCreated(model.CollectionAppointments)
	s.cache.Invalidate(aggcache.KeyDashboard)
	s.events.Emit(ctx, event.AppointmentBooked, appt)
	s.logger.WithContext(ctx).Info("appointment booked",
		"appointment_id", appt.ID,
		"patient_id", appt.PatientID,
		"doctor_id", appt.DoctorID,
		"date", appt.Date,
	)

	return appt, nil
}

func (s *Service) resolvePatient(ctx context.Context, req *model.BookAppointmentRequest) (*model.Patient, error) {
	if req.PatientID > 0 {
		p, err := s.patientRepo.Get(ctx, req.PatientID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve patient %d: %w", req.PatientID, err)
		}
		return p, nil
	}
	p, err := s.patientRepo.FindByName(ctx, req.PatientName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient %q: %w", req.PatientName, err)
	}
	return p, nil
}

func (s *Service) resolveDoctor(ctx context.Context, req *model.BookAppointmentRequest) (*model.Doctor, error) {
	if req.DoctorID > 0 {
		d, err := s.doctorRepo.Get(ctx, req.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve doctor %d: %w", req.DoctorID, err)
		}
		return d, nil
	}
	d, err := s.doctorRepo.FindByName(ctx, req.DoctorName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor %q: %w", req.DoctorName, err)
	}
	return d, nil
}

// ListAppointments returns every appointment, or those whose date equals
// date exactly when it is non-empty.
func (s *Service) ListAppointments(ctx context.Context, date string) ([]*model.Appointment, error) {
	appts, err := s.repo.List(ctx, &model.AppointmentFilters{Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}
