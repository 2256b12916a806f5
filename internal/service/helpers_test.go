package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Keto24/saturday-planner/internal/calendar"
	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/intelligence"
	"github.com/Keto24/saturday-planner/internal/notify"
	"github.com/Keto24/saturday-planner/internal/places"
	"github.com/Keto24/saturday-planner/internal/repository"
	"github.com/Keto24/saturday-planner/internal/testutil"
	"github.com/Keto24/saturday-planner/internal/weather"
)

// stubSource stands in for the places adapter with a fixed candidate list.
type stubSource struct {
	venues []domain.VenueCandidate
	err    error
}

func (s stubSource) Search(ctx context.Context, query places.SearchQuery) ([]domain.VenueCandidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.venues, nil
}

// failingWriter is a calendar writer that always fails.
type failingWriter struct {
	err error
}

func (w failingWriter) CreateEvent(ctx context.Context, ev calendar.Event) (string, error) {
	return "", w.err
}

// recordingSender captures SMS sends instead of delivering them.
type recordingSender struct {
	to     []string
	bodies []string
	err    error
}

func (s *recordingSender) SendSMS(ctx context.Context, to, body string) error {
	if s.err != nil {
		return s.err
	}
	s.to = append(s.to, to)
	s.bodies = append(s.bodies, body)
	return nil
}

// captureObserver records every use-case event it sees.
type captureObserver struct {
	events []UseCaseEvent
}

func (o *captureObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	o.events = append(o.events, event)
}

// planDeps bundles the repositories a plan service test inspects after a run.
type planDeps struct {
	database *sql.DB
	prefs    *repository.SQLitePreferenceRepo
	runs     *repository.SQLitePlanRunRepo
	scoring  *repository.SQLiteScoringConfigRepo
	uow      db.UnitOfWork
}

func newPlanDeps(t *testing.T) planDeps {
	t.Helper()
	database := testutil.NewTestDB(t)
	return planDeps{
		database: database,
		prefs:    repository.NewSQLitePreferenceRepo(database),
		runs:     repository.NewSQLitePlanRunRepo(database),
		scoring:  repository.NewSQLiteScoringConfigRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

// service wires a plan service with quiet demo action adapters and a
// deterministic narrator. Tests that need a failing calendar writer or SMS
// sender call NewPlanService directly.
func (d planDeps) service(forecasts weather.Client, venues places.Source, opts PlanOptions, observers ...UseCaseObserver) PlanService {
	return NewPlanService(
		d.prefs,
		d.scoring,
		forecasts,
		venues,
		intelligence.NewNarrativeService(nil, false),
		calendar.DemoWriter{Log: zerolog.Nop()},
		notify.DemoSender{Log: zerolog.Nop()},
		d.uow,
		opts,
		observers...,
	)
}
