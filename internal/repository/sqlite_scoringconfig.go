package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
)

// SQLiteScoringConfigRepo implements ScoringConfigRepo using a SQLite database.
type SQLiteScoringConfigRepo struct {
	db db.DBTX
}

// NewSQLiteScoringConfigRepo creates a new SQLiteScoringConfigRepo.
func NewSQLiteScoringConfigRepo(conn db.DBTX) *SQLiteScoringConfigRepo {
	return &SQLiteScoringConfigRepo{db: conn}
}

func (r *SQLiteScoringConfigRepo) Get(ctx context.Context) (*domain.ScoringProfile, error) {
	query := `SELECT id, w_rating, w_preference, w_price, clamp_min, clamp_max, implicit_delta
		FROM scoring_config WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.ScoringProfile
	err := row.Scan(
		&p.ID,
		&p.WRating,
		&p.WPreference,
		&p.WPrice,
		&p.ClampMin,
		&p.ClampMax,
		&p.ImplicitDelta,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("scoring config: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning scoring config: %w", err)
	}
	return &p, nil
}

func (r *SQLiteScoringConfigRepo) Update(ctx context.Context, p *domain.ScoringProfile) error {
	query := `INSERT OR REPLACE INTO scoring_config (id, w_rating, w_preference, w_price,
		clamp_min, clamp_max, implicit_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		domain.CoalesceStr(p.ID, "default"),
		p.WRating,
		p.WPreference,
		p.WPrice,
		p.ClampMin,
		p.ClampMax,
		p.ImplicitDelta,
	)
	if err != nil {
		return fmt.Errorf("updating scoring config: %w", err)
	}
	return nil
}
