package patient

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

type PatientService interface {
	AddPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	SearchPatients(ctx context.Context, query string) ([]*model.Patient, error)
}

type Service struct {
	repo      repository.PatientRepository
	validator validator.Validator
	cache     *aggcache.Cache
	events    event.Emitter
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.PatientRepository,
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

func (s *Service) AddPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordRejected(model.CollectionPatients)
		return nil, fmt.Errorf("invalid patient data: %w", err)
	}

	patient := &model.Patient{
		Name:  req.Name,
		Age:   req.Age,
		Phone: req.Phone,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.metrics.RecordCreated(model.CollectionPatients)
	s.cache.Invalidate(aggcache.KeyDashboard)
	s.events.Emit(ctx, event.PatientCreated, patient)
	s.logger.WithContext(ctx).Info("patient added", "patient_id", patient.ID)

	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// SearchPatients matches query case-insensitively against name or phone.
// An empty query returns every patient.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, &model.PatientFilters{Query: strings.TrimSpace(query)})
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}
