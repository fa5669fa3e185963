package doctor

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

type DoctorService interface {
	AddDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	UpdateDoctorStatus(ctx context.Context, id int64, req *model.UpdateDoctorStatusRequest) (*model.Doctor, error)
}

type Service struct {
	repo      repository.DoctorRepository
	validator validator.Validator
	cache     *aggcache.Cache
	events    event.Emitter
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.DoctorRepository,
	v validator.Validator,
	cache *aggcache.Cache,
	events event.Emitter,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		cache:     cache,
		events:    events,
		logger:    log,
		metrics:   m,
	}
}

// AddDoctor stores a doctor. Status defaults to available.
func (s *Service) AddDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Specialty = strings.TrimSpace(req.Specialty)

	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordRejected(model.CollectionDoctors)
		return nil, fmt.Errorf("invalid doctor data: %w", err)
	}

	status := req.Status
	if status == "" {
		status = model.DoctorStatusAvailable
	}

	doctor := &model.Doctor{
		Name:      req.Name,
		Specialty: req.Specialty,
		Status:    status,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.metrics.RecordCreated(model.CollectionDoctors)
	s.cache.Invalidate(aggcache.KeyDashboard)
	s.events.Emit(ctx, event.DoctorCreated, doctor)
	s.logger.WithContext(ctx).Info("doctor added", "doctor_id", doctor.ID, "specialty", doctor.Specialty)

	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) UpdateDoctorStatus(ctx context.Context, id int64, req *model.UpdateDoctorStatusRequest) (*model.Doctor, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid doctor status: %w", err)
	}

	doctor, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor status: %w", err)
	}

	s.events.Emit(ctx, event.DoctorStatusChanged, doctor)
	s.logger.WithContext(ctx).Info("doctor status changed", "doctor_id", id, "status", string(doctor.Status))

	return doctor, nil
}
