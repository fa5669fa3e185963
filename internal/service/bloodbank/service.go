package bloodbank

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-records/internal/aggcache"
	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type BloodBankService interface {
	RecordBloodDonation(ctx context.Context, req *model.RecordDonationRequest) (*model.BloodDonation, error)
	BloodSummary(ctx context.Context) ([]*model.BloodTypeTotal, error)
	SeedBloodStock(ctx context.Context, bags int) ([]*model.BloodTypeTotal, error)
}

type Service struct {
	repo      repository.BloodBankRepository
	validator validator.Validator
	cache     *aggcache.Cache
	events    event.Emitter
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.BloodBankRepository,
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

func (s *Service) RecordBloodDonation(ctx context.Context, req *model.RecordDonationRequest) (*model.BloodDonation, error) {
	req.Donor = strings.TrimSpace(req.Donor)
	req.BloodType = model.BloodType(strings.ToUpper(strings.TrimSpace(string(req.BloodType))))

	if err := s.validate(req); err != nil {
		s.metrics.RecordRejected(model.CollectionBloodBank)
		return nil, fmt.Errorf("invalid blood donation: %w", err)
	}

	donation := &model.BloodDonation{
		Donor:     req.Donor,
		BloodType: req.BloodType,
		Bags:      req.Bags,
	}
	if err := s.insert(ctx, donation); err != nil {
		return nil, err
	}

	s.cache.Invalidate(aggcache.KeyBloodSummary)
	return donation, nil
}

func (s *Service) validate(req *model.RecordDonationRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if !req.BloodType.Valid() {
		return apperrors.Validation("blood_type", fmt.Sprintf("blood_type must be one of %v", model.BloodTypes))
	}
	if req.Bags < 1 {
		return apperrors.Constraint("bags must be at least 1", nil)
	}
	return nil
}

func (s *Service) insert(ctx context.Context, donation *model.BloodDonation) error {
	if err := s.repo.Create(ctx, donation); err != nil {
		return fmt.Errorf("failed to record blood donation: %w", err)
	}

	s.metrics.RecordCreated(model.CollectionBloodBank)
	s.events.Emit(ctx, event.BloodDonationRecorded, donation)
	s.logger.WithContext(ctx).Info("blood donation recorded",
		"donation_id", donation.ID,
		"blood_type", string(donation.BloodType),
		"bags", donation.Bags,
	)
	return nil
}

// BloodSummary returns one row per blood type present, bags summed, in
// canonical blood type order.
func (s *Service) BloodSummary(ctx context.Context) ([]*model.BloodTypeTotal, error) {
	totals, err := aggcache.Load(ctx, s.cache, aggcache.KeyBloodSummary, s.repo.Totals)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize blood stock: %w", err)
	}
	return totals, nil
}

// SeedBloodStock records a donation of bags for every blood type that has no
// stock yet. Types already stocked are left alone, so repeated calls are
// no-ops.
func (s *Service) SeedBloodStock(ctx context.Context, bags int) ([]*model.BloodTypeTotal, error) {
	if bags < 1 {
		return nil, apperrors.Constraint("bags must be at least 1", nil)
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read blood stock: %w", err)
	}

	stocked := make(map[model.BloodType]bool, len(totals))
	for _, t := range totals {
		stocked[t.BloodType] = true
	}

	seeded := 0
	for _, bt := range model.BloodTypes {
		if stocked[bt] {
			continue
		}
		if err := s.insert(ctx, &model.BloodDonation{BloodType: bt, Bags: bags}); err != nil {
			s.cache.Invalidate(aggcache.KeyBloodSummary)
			return nil, err
		}
		seeded++
	}

	if seeded == 0 {
		return totals, nil
	}

	s.cache.Invalidate(aggcache.KeyBloodSummary)
	s.logger.WithContext(ctx).Info("blood stock seeded", "types", seeded, "bags", bags)
	return s.BloodSummary(ctx)
}
