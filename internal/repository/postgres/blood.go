package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

type bloodBankRepository struct {
	BaseRepository
}

func NewBloodBankRepository(db *sqlx.DB, m *metrics.Metrics) repository.BloodBankRepository {
	return &bloodBankRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *bloodBankRepository) Create(ctx context.Context, donation *model.BloodDonation) error {
	start := time.Now()
	query := `
		INSERT INTO blood_donations (donor, blood_type, bags)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, donation.Donor, donation.BloodType, donation.Bags).
		Scan(&donation.ID, &donation.CreatedAt)
	r.observe("create_blood_donation", start, err)
	if err != nil {
		return fmt.Errorf("failed to record blood donation: %w", mapError(err, "blood donation"))
	}
	return nil
}

func (r *bloodBankRepository) Totals(ctx context.Context) ([]*model.BloodTypeTotal, error) {
	start := time.Now()
	query := `SELECT blood_type, SUM(bags) AS bags FROM blood_donations GROUP BY blood_type`

	totals := make([]*model.BloodTypeTotal, 0)
	err := r.db.SelectContext(ctx, &totals, query)
	r.observe("blood_totals", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to sum blood stock: %w", err)
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].BloodType.Rank() < totals[j].BloodType.Rank()
	})
	return totals, nil
}
