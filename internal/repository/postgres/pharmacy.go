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

const pharmacyColumns = `id, name, price, quantity, created_at`

type pharmacyRepository struct {
	BaseRepository
}

func NewPharmacyRepository(db *sqlx.DB, m *metrics.Metrics) repository.PharmacyRepository {
	return &pharmacyRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *pharmacyRepository) Create(ctx context.Context, item *model.PharmacyItem) error {
	start := time.Now()
	query := `
		INSERT INTO pharmacy_items (name, price, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, item.Name, item.Price, item.Quantity).
		Scan(&item.ID, &item.CreatedAt)
	r.observe("create_pharmacy_item", start, err)
	if err != nil {
		return fmt.Errorf("failed to create pharmacy item: %w", mapError(err, "pharmacy item"))
	}
	return nil
}

func (r *pharmacyRepository) List(ctx context.Context) ([]*model.PharmacyItem, error) {
	start := time.Now()
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacy_items ORDER BY id DESC`

	items := make([]*model.PharmacyItem, 0)
	err := r.db.SelectContext(ctx, &items, query)
	r.observe("list_pharmacy_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list pharmacy items: %w", err)
	}
	return items, nil
}

func (r *pharmacyRepository) Valuation(ctx context.Context) (*model.InventoryValuation, error) {
	start := time.Now()
	query := `
		SELECT COALESCE(SUM(price * quantity), 0) AS total_value, COUNT(*) AS items
		FROM pharmacy_items
	`
	var v model.InventoryValuation
	err := r.db.GetContext(ctx, &v, query)
	r.observe("pharmacy_valuation", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	return &v, nil
}

func (r *pharmacyRepository) ListBelowQuantity(ctx context.Context, threshold int64) ([]*model.PharmacyItem, error) {
	start := time.Now()
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacy_items WHERE quantity < $1 ORDER BY quantity, id`

	items := make([]*model.PharmacyItem, 0)
	err := r.db.SelectContext(ctx, &items, query, threshold)
	r.observe("list_low_pharmacy_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}
