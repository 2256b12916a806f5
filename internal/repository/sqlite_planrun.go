package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
)

// planRunColumns is the canonical SELECT column list for plan_runs.
const planRunColumns = `id, created_at, zip, weather, chosen_venue_id,
		chosen_name, chosen_category, score, degraded, narrative`

// SQLitePlanRunRepo implements PlanRunRepo using a SQLite database.
type SQLitePlanRunRepo struct {
	db db.DBTX
}

// NewSQLitePlanRunRepo creates a new SQLitePlanRunRepo.
func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

func (r *SQLitePlanRunRepo) Insert(ctx context.Context, run *domain.PlanRun) error {
	query := `INSERT INTO plan_runs (id, created_at, zip, weather, chosen_venue_id,
		chosen_name, chosen_category, score, degraded, narrative)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.Zip,
		string(run.Weather),
		run.ChosenVenueID,
		run.ChosenName,
		string(run.ChosenCategory),
		run.Score,
		boolToInt(run.Degraded),
		run.Narrative,
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + planRunColumns + ` FROM plan_runs
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		var run domain.PlanRun
		var createdAt, weather, category string
		var degraded int
		if err := rows.Scan(
			&run.ID,
			&createdAt,
			&run.Zip,
			&weather,
			&run.ChosenVenueID,
			&run.ChosenName,
			&category,
			&run.Score,
			&degraded,
			&run.Narrative,
		); err != nil {
			return nil, fmt.Errorf("scanning plan run: %w", err)
		}
		if run.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		run.Weather = domain.WeatherCondition(weather)
		run.ChosenCategory = domain.Category(category)
		run.Degraded = intToBool(degraded)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan runs: %w", err)
	}
	return runs, nil
}
