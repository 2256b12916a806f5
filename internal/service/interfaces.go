package service

import (
	"context"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
)

// PlanService runs the full Saturday planning pipeline: forecast, venue
// discovery, selection, phrasing, calendar and SMS actions, history and
// preference bookkeeping.
type PlanService interface {
	// Plan produces a plan for the coming Saturday. A degraded plan (a
	// bypassed filter or a weather fallback) is still a success; the
	// response carries the flags and warnings. Errors are returned as
	// *contract.PlanError.
	Plan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
}

// FeedbackService records explicit likes and dislikes into the preference
// memory.
type FeedbackService interface {
	// Record applies the request's delta to the addressed weight, clamped
	// to the configured range, and returns the new value. Errors are
	// returned as *contract.FeedbackError.
	Record(ctx context.Context, req contract.FeedbackRequest) (*contract.FeedbackResponse, error)
}

// MemoryService exposes the learned preference weights.
type MemoryService interface {
	List(ctx context.Context) ([]domain.PreferenceWeight, error)
	// Reset deletes every stored weight. The next plan run starts from a
	// blank memory.
	Reset(ctx context.Context) error
}

// HistoryService lists past plan runs, newest first.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}
