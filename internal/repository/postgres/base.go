package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

func (r *BaseRepository) observe(operation string, start time.Time, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	r.metrics.ObserveDB(operation, start, err)
}

// Postgres SQLSTATE codes
const (
	pqNotNullViolation    = "23502"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// mapError turns driver errors into application errors where the caller can
// act on them. Anything else is returned unchanged.
func mapError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return apperrors.NotFound("referenced record", err)
		case pqCheckViolation, pqNotNullViolation:
			return apperrors.Constraint(resource+" violates a data constraint", err)
		}
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
