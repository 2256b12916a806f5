package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Keto24/saturday-planner/internal/calendar"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/engine"
	"github.com/Keto24/saturday-planner/internal/intelligence"
	"github.com/Keto24/saturday-planner/internal/notify"
	"github.com/Keto24/saturday-planner/internal/places"
	"github.com/Keto24/saturday-planner/internal/repository"
	"github.com/Keto24/saturday-planner/internal/weather"
)

// PlanOptions tunes pipeline behavior that is not part of a single request.
type PlanOptions struct {
	// WeatherFallback treats a failed forecast lookup as clear weather
	// instead of failing the run. The response is flagged degraded and
	// carries a warning. Off unless the operator opts in.
	WeatherFallback bool
}

type planService struct {
	prefs     repository.PreferenceRepo
	scoring   repository.ScoringConfigRepo
	forecasts weather.Client
	venues    places.Source
	narrator  intelligence.NarrativeService
	events    calendar.Writer
	sms       notify.Sender
	uow       db.UnitOfWork
	opts      PlanOptions
	observer  UseCaseObserver
}

func NewPlanService(
	prefs repository.PreferenceRepo,
	scoring repository.ScoringConfigRepo,
	forecasts weather.Client,
	venues places.Source,
	narrator intelligence.NarrativeService,
	events calendar.Writer,
	sms notify.Sender,
	uow db.UnitOfWork,
	opts PlanOptions,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		prefs:     prefs,
		scoring:   scoring,
		forecasts: forecasts,
		venues:    venues,
		narrator:  narrator,
		events:    events,
		sms:       sms,
		uow:       uow,
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Plan(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"zip": req.Zip}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validatePlanRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	scheduledFor := calendar.NextSaturday(now)

	var warnings []string

	cfg, err := s.loadScoringConfig(ctx)
	if err != nil {
		return nil, planInternal(err)
	}

	snapshot, memWarn := s.loadMemory(ctx)
	if memWarn != "" {
		warnings = append(warnings, memWarn)
	}

	condition, fallbackUsed, err := s.resolveWeather(ctx, req, scheduledFor)
	if err != nil {
		return nil, &contract.PlanError{
			Code:    contract.ErrWeatherLookup,
			Message: fmt.Sprintf("forecast for %s failed: %v", req.Zip, err),
		}
	}
	if fallbackUsed {
		warnings = append(warnings, "forecast unavailable, planning for clear weather")
	}
	fields["weather"] = string(condition)

	candidates, err := s.venues.Search(ctx, places.SearchQuery{
		Zip:         req.Zip,
		RadiusMiles: req.RadiusMiles,
		Categories:  req.Categories,
		MaxPrice:    req.MaxPrice,
	})
	if err != nil {
		return nil, &contract.PlanError{
			Code:    contract.ErrVenueSearch,
			Message: fmt.Sprintf("venue search near %s failed: %v", req.Zip, err),
		}
	}
	fields["candidates"] = len(candidates)

	result, err := engine.Select(engine.SelectionInput{
		Candidates: candidates,
		Weather:    condition,
		MaxPrice:   req.MaxPrice,
		Memory:     snapshot,
		Config:     cfg,
	})
	if err != nil {
		if errors.Is(err, engine.ErrNoCandidates) {
			return nil, &contract.PlanError{
				Code:    contract.ErrNoCandidates,
				Message: fmt.Sprintf("no venues found near %s", req.Zip),
			}
		}
		return nil, planInternal(err)
	}
	if result.WeatherFilterBypassed {
		warnings = append(warnings, "no indoor venue matched, weather filter bypassed")
	}
	if result.PriceFilterBypassed {
		warnings = append(warnings, fmt.Sprintf("every venue exceeded price level %d, price filter bypassed", req.MaxPrice))
	}

	resp = &contract.PlanResponse{
		GeneratedAt:           now,
		RunID:                 uuid.New().String(),
		Zip:                   req.Zip,
		Weather:               condition,
		Chosen:                result.Chosen,
		RunnerUps:             result.RunnerUps,
		WeatherFilterBypassed: result.WeatherFilterBypassed,
		PriceFilterBypassed:   result.PriceFilterBypassed,
		WeatherFallbackUsed:   fallbackUsed,
		ScheduledFor:          scheduledFor,
	}

	narrative := s.narrator.Compose(ctx, intelligence.BuildPlanTrace(resp))
	resp.Narrative = narrative.Message
	resp.SMSBody = narrative.SMS
	fields["narrative_source"] = narrative.Source

	// Dry runs stop here: no calendar event, no SMS, no history row, no
	// preference nudge. The caller gets the full plan to look at.
	if req.DryRun {
		resp.Warnings = warnings
		s.fillResultFields(fields, resp)
		return resp, nil
	}

	if eventID, evErr := s.events.CreateEvent(ctx, calendar.Event{
		Title:       "Saturday: " + resp.Chosen.Venue.DisplayName(),
		Description: narrative.Message,
		Start:       scheduledFor,
	}); evErr != nil {
		warnings = append(warnings, fmt.Sprintf("calendar event not created: %v", evErr))
	} else {
		resp.CalendarEventID = eventID
	}

	if req.Phone != "" {
		if smsErr := s.sms.SendSMS(ctx, req.Phone, narrative.SMS); smsErr != nil {
			warnings = append(warnings, fmt.Sprintf("SMS to %s not sent: %v", req.Phone, smsErr))
		}
	}

	// The plan has already been delivered; a failed write must not undo it.
	if recErr := s.recordRun(ctx, resp, cfg); recErr != nil {
		warnings = append(warnings, fmt.Sprintf("plan not recorded, preference memory unchanged: %v", recErr))
		fields["memory_update_failed"] = true
	}

	resp.Warnings = warnings
	s.fillResultFields(fields, resp)
	return resp, nil
}

func validatePlanRequest(req contract.PlanRequest) error {
	if req.MaxPrice < 0 || req.MaxPrice > 4 {
		return &contract.PlanError{
			Code:    contract.ErrInvalidMaxPrice,
			Message: fmt.Sprintf("max price must be between 0 and 4, got %d", req.MaxPrice),
		}
	}
	if req.Weather != nil && !domain.ValidWeatherConditions[string(*req.Weather)] {
		return &contract.PlanError{
			Code:    contract.ErrInvalidWeather,
			Message: fmt.Sprintf("unknown weather condition '%s'", *req.Weather),
		}
	}
	return nil
}

// loadScoringConfig reads the tunable weight profile. A missing row (fresh
// database, seed removed) falls back to the built-in defaults; an invalid
// profile is an operator error and fails the run.
func (s *planService) loadScoringConfig(ctx context.Context) (engine.ScoringConfig, error) {
	profile, err := s.scoring.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return engine.DefaultConfig(), nil
		}
		return engine.ScoringConfig{}, fmt.Errorf("loading scoring config: %w", err)
	}
	cfg := engine.ScoringConfig{
		WRating:       profile.WRating,
		WPreference:   profile.WPreference,
		WPrice:        profile.WPrice,
		ClampMin:      profile.ClampMin,
		ClampMax:      profile.ClampMax,
		ImplicitDelta: profile.ImplicitDelta,
	}
	if err := cfg.Validate(); err != nil {
		return engine.ScoringConfig{}, fmt.Errorf("scoring config: %w", err)
	}
	return cfg, nil
}

// loadMemory snapshots the preference store. A read failure degrades to an
// empty snapshot: the run continues on rating and price alone.
func (s *planService) loadMemory(ctx context.Context) (*domain.PreferenceSnapshot, string) {
	rows, err := s.prefs.LoadAll(ctx)
	if err != nil {
		return domain.EmptyPreferenceSnapshot(), fmt.Sprintf("preference memory unavailable, scoring without it: %v", err)
	}
	return domain.NewPreferenceSnapshot(rows), ""
}

// resolveWeather returns the condition for the outing day. An explicit
// request override wins and skips the forecast call entirely.
func (s *planService) resolveWeather(ctx context.Context, req contract.PlanRequest, date time.Time) (domain.WeatherCondition, bool, error) {
	if req.Weather != nil {
		return *req.Weather, false, nil
	}
	condition, err := s.forecasts.Forecast(ctx, req.Zip, date)
	if err == nil {
		return condition, false, nil
	}
	if s.opts.WeatherFallback {
		return domain.WeatherClear, true, nil
	}
	return "", false, err
}

// recordRun persists the history row and applies the implicit preference
// nudge for the chosen venue, atomically. The chosen venue lifts both its
// category weight and its own venue weight.
func (s *planService) recordRun(ctx context.Context, resp *contract.PlanResponse, cfg engine.ScoringConfig) error {
	run := &domain.PlanRun{
		ID:             resp.RunID,
		CreatedAt:      resp.GeneratedAt,
		Zip:            resp.Zip,
		Weather:        resp.Weather,
		ChosenVenueID:  resp.Chosen.Venue.ID,
		ChosenName:     resp.Chosen.Venue.DisplayName(),
		ChosenCategory: resp.Chosen.Venue.Category,
		Score:          resp.Chosen.Score,
		Degraded:       resp.Degraded(),
		Narrative:      resp.Narrative,
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRuns := repository.NewSQLitePlanRunRepo(tx)
		txPrefs := repository.NewSQLitePreferenceRepo(tx)

		if err := txRuns.Insert(ctx, run); err != nil {
			return fmt.Errorf("recording plan run: %w", err)
		}
		if _, err := txPrefs.ApplyDelta(ctx, run.ChosenCategory, "", cfg.ImplicitDelta, cfg.ClampMin, cfg.ClampMax); err != nil {
			return fmt.Errorf("updating category weight: %w", err)
		}
		if run.ChosenVenueID != "" {
			if _, err := txPrefs.ApplyDelta(ctx, run.ChosenCategory, run.ChosenVenueID, cfg.ImplicitDelta, cfg.ClampMin, cfg.ClampMax); err != nil {
				return fmt.Errorf("updating venue weight: %w", err)
			}
		}
		return nil
	})
}

func (s *planService) fillResultFields(fields map[string]any, resp *contract.PlanResponse) {
	fields["run_id"] = resp.RunID
	fields["venue"] = resp.Chosen.Venue.DisplayName()
	fields["score"] = resp.Chosen.Score
	fields["degraded"] = resp.Degraded()
}

func planInternal(err error) *contract.PlanError {
	return &contract.PlanError{
		Code:    contract.ErrInternalError,
		Message: err.Error(),
	}
}
