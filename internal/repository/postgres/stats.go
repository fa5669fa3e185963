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

type statsRepository struct {
	BaseRepository
}

func NewStatsRepository(db *sqlx.DB, m *metrics.Metrics) repository.StatsRepository {
	return &statsRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *statsRepository) Counts(ctx context.Context) (*model.DashboardSummary, error) {
	start := time.Now()
	query := `
		SELECT
			(SELECT COUNT(*) FROM patients)       AS patients,
			(SELECT COUNT(*) FROM doctors)        AS doctors,
			(SELECT COUNT(*) FROM appointments)   AS appointments,
			(SELECT COUNT(*) FROM pharmacy_items) AS medicines
	`
	var summary model.DashboardSummary
	err := r.db.GetContext(ctx, &summary, query)
	r.observe("dashboard_counts", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &summary, nil
}
