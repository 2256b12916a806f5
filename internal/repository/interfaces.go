package repository

import (
	"context"
	"errors"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// ErrNotFound is the sentinel for missing rows. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

type PreferenceRepo interface {
	LoadAll(ctx context.Context) ([]domain.PreferenceWeight, error)
	Get(ctx context.Context, category domain.Category, venueID string) (*domain.PreferenceWeight, error)
	Upsert(ctx context.Context, w *domain.PreferenceWeight) error
	// ApplyDelta adds delta to the stored weight (zero when absent), clamps
	// the sum to [clampMin, clampMax] and writes it back, returning the new
	// value. Run it on a tx-scoped repo so the read-modify-write is atomic.
	ApplyDelta(ctx context.Context, category domain.Category, venueID string, delta, clampMin, clampMax float64) (float64, error)
	Reset(ctx context.Context) error
}

type PlanRunRepo interface {
	Insert(ctx context.Context, run *domain.PlanRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}

type ScoringConfigRepo interface {
	Get(ctx context.Context) (*domain.ScoringProfile, error)
	Update(ctx context.Context, p *domain.ScoringProfile) error
}
