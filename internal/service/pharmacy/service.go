package pharmacy

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

type PharmacyService interface {
	AddPharmacyItem(ctx context.Context, req *model.CreatePharmacyItemRequest) (*model.PharmacyItem, error)
	ListPharmacy(ctx context.Context) ([]*model.PharmacyItem, error)
	TotalInventoryValue(ctx context.Context) (*model.InventoryValuation, error)
}

type Service struct {
	repo      repository.PharmacyRepository
	validator validator.Validator
	cache     *aggcache.Cache
	events    event.Emitter
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.PharmacyRepository,
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

func (s *Service) AddPharmacyItem(ctx context.Context, req *model.CreatePharmacyItemRequest) (*model.PharmacyItem, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate(req); err != nil {
		s.metrics.RecordRejected(model.CollectionPharmacy)
		return nil, fmt.Errorf("invalid pharmacy item: %w", err)
	}

	item := &model.PharmacyItem{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add pharmacy item: %w", err)
	}

	s.metrics.RecordCreated(model.CollectionPharmacy)
	s.cache.Invalidate(aggcache.KeyInventoryValue, aggcache.KeyDashboard)
	s.events.Emit(ctx, event.PharmacyItemAdded, item)
	s.logger.WithContext(ctx).Info("pharmacy item added", "item_id", item.ID, "quantity", item.Quantity)

	return item, nil
}

func (s *Service) validate(req *model.CreatePharmacyItemRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if req.Price < 0 {
		return apperrors.Constraint("price must not be negative", nil)
	}
	if req.Quantity < 0 {
		return apperrors.Constraint("quantity must not be negative", nil)
	}
	return nil
}

func (s *Service) ListPharmacy(ctx context.Context) ([]*model.PharmacyItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pharmacy: %w", err)
	}
	return items, nil
}

// TotalInventoryValue sums price * quantity over every item.
func (s *Service) TotalInventoryValue(ctx context.Context) (*model.InventoryValuation, error) {
	v, err := aggcache.Load(ctx, s.cache, aggcache.KeyInventoryValue, s.repo.Valuation)
	if err != nil {
		return nil, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	return v, nil
}
