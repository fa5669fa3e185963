package dashboard

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-records/internal/aggcache"
	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
)

type DashboardService interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
}

type Service struct {
	repo  repository.StatsRepository
	cache *aggcache.Cache
}

func NewService(repo repository.StatsRepository, cache *aggcache.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Summary counts patients, doctors, appointments and pharmacy items.
func (s *Service) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	summary, err := aggcache.Load(ctx, s.cache, aggcache.KeyDashboard, s.repo.Counts)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard summary: %w", err)
	}
	return summary, nil
}
