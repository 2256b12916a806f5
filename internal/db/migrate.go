package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS preference_weights (
		category   TEXT NOT NULL,
		venue_id   TEXT NOT NULL DEFAULT '',
		weight     REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (category, venue_id)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id              TEXT PRIMARY KEY,
		created_at      TEXT NOT NULL,
		zip             TEXT NOT NULL,
		weather         TEXT NOT NULL
		                CHECK(weather IN ('clear','cloudy','rain','storm','extreme')),
		chosen_venue_id TEXT NOT NULL,
		chosen_name     TEXT NOT NULL DEFAULT '',
		chosen_category TEXT NOT NULL,
		score           REAL NOT NULL,
		degraded        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS scoring_config (
		id           TEXT PRIMARY KEY DEFAULT 'default',
		w_rating     REAL NOT NULL DEFAULT 2.0,
		w_preference REAL NOT NULL DEFAULT 1.0,
		w_price      REAL NOT NULL DEFAULT 0.25,
		clamp_min    REAL NOT NULL DEFAULT -5.0,
		clamp_max    REAL NOT NULL DEFAULT 5.0
	)`,

	// Seed the default scoring config so weights are tunable in place
	`INSERT OR IGNORE INTO scoring_config (id) VALUES ('default')`,

	// Narrative column arrived with the LLM phrasing feature
	`ALTER TABLE plan_runs ADD COLUMN narrative TEXT NOT NULL DEFAULT ''`,

	// The implicit post-run delta became configurable
	`ALTER TABLE scoring_config ADD COLUMN implicit_delta REAL NOT NULL DEFAULT 0.25`,
}
