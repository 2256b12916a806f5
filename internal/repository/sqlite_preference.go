package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
)

// SQLitePreferenceRepo implements PreferenceRepo using a SQLite database.
type SQLitePreferenceRepo struct {
	db db.DBTX
}

// NewSQLitePreferenceRepo creates a new SQLitePreferenceRepo.
func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn}
}

func (r *SQLitePreferenceRepo) LoadAll(ctx context.Context) ([]domain.PreferenceWeight, error) {
	query := `SELECT category, venue_id, weight, updated_at
		FROM preference_weights ORDER BY category, venue_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing preference weights: %w", err)
	}
	defer rows.Close()

	var weights []domain.PreferenceWeight
	for rows.Next() {
		w, err := scanPreferenceWeight(rows)
		if err != nil {
			return nil, err
		}
		weights = append(weights, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating preference weights: %w", err)
	}
	return weights, nil
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, category domain.Category, venueID string) (*domain.PreferenceWeight, error) {
	query := `SELECT category, venue_id, weight, updated_at
		FROM preference_weights WHERE category = ? AND venue_id = ?`
	row := r.db.QueryRowContext(ctx, query, string(category), venueID)

	var w domain.PreferenceWeight
	var cat, updatedAt string
	err := row.Scan(&cat, &w.VenueID, &w.Weight, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("preference weight: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning preference weight: %w", err)
	}
	w.Category = domain.Category(cat)
	if w.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SQLitePreferenceRepo) Upsert(ctx context.Context, w *domain.PreferenceWeight) error {
	query := `INSERT INTO preference_weights (category, venue_id, weight, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(category, venue_id) DO UPDATE
		SET weight = excluded.weight, updated_at = excluded.updated_at`
	updatedAt := nowUTC()
	if !w.UpdatedAt.IsZero() {
		updatedAt = w.UpdatedAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, query,
		string(w.Category),
		w.VenueID,
		w.Weight,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting preference weight: %w", err)
	}
	return nil
}

func (r *SQLitePreferenceRepo) ApplyDelta(ctx context.Context, category domain.Category, venueID string, delta, clampMin, clampMax float64) (float64, error) {
	var current float64
	row := r.db.QueryRowContext(ctx,
		`SELECT weight FROM preference_weights WHERE category = ? AND venue_id = ?`,
		string(category), venueID)
	if err := row.Scan(&current); err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("reading preference weight: %w", err)
	}

	next := domain.ClampFloat(current+delta, clampMin, clampMax)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preference_weights (category, venue_id, weight, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(category, venue_id) DO UPDATE
		SET weight = excluded.weight, updated_at = excluded.updated_at`,
		string(category), venueID, next, nowUTC())
	if err != nil {
		return 0, fmt.Errorf("applying preference delta: %w", err)
	}
	return next, nil
}

func (r *SQLitePreferenceRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preference_weights`); err != nil {
		return fmt.Errorf("resetting preference weights: %w", err)
	}
	return nil
}

func scanPreferenceWeight(rows *sql.Rows) (*domain.PreferenceWeight, error) {
	var w domain.PreferenceWeight
	var cat, updatedAt string
	if err := rows.Scan(&cat, &w.VenueID, &w.Weight, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning preference weight: %w", err)
	}
	w.Category = domain.Category(cat)
	var err error
	if w.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
