package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keto24/saturday-planner/internal/calendar"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/intelligence"
	"github.com/Keto24/saturday-planner/internal/notify"
	"github.com/Keto24/saturday-planner/internal/places"
	"github.com/Keto24/saturday-planner/internal/repository"
	"github.com/Keto24/saturday-planner/internal/testutil"
	"github.com/Keto24/saturday-planner/internal/weather"
	"github.com/rs/zerolog"
)

// A Monday morning; the coming Saturday is June 6.
func mondayJune1() time.Time {
	return time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
}

func planRequestAt(now time.Time) contract.PlanRequest {
	req := contract.NewPlanRequest("10001")
	req.Now = &now
	return req
}

func TestPlan_ChoosesBestVenueAndSchedulesSaturday(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Equal(t, "Riverside Park", resp.Chosen.Venue.Name,
		"a free, highly rated park should win on a clear day with no memory")
	assert.InDelta(t, 1.92, resp.Chosen.Score, 1e-9)
	assert.Equal(t, domain.WeatherClear, resp.Weather)
	assert.NotEmpty(t, resp.RunID)
	assert.False(t, resp.Degraded())
	assert.Empty(t, resp.Warnings)

	assert.Equal(t, time.Date(2026, time.June, 6, 11, 0, 0, 0, time.UTC), resp.ScheduledFor)
	assert.Equal(t, time.Saturday, resp.ScheduledFor.Weekday())

	require.NotEmpty(t, resp.RunnerUps)
	assert.Equal(t, "Ridge Trailhead", resp.RunnerUps[0].Venue.Name)
	for i := 1; i < len(resp.RunnerUps); i++ {
		assert.LessOrEqual(t, resp.RunnerUps[i].Score, resp.RunnerUps[i-1].Score,
			"runner-ups should be ordered best first")
	}

	assert.Contains(t, resp.Narrative, "Riverside Park")
	assert.NotEmpty(t, resp.SMSBody)
	assert.NotEmpty(t, resp.CalendarEventID)
}

func TestPlan_PersistsRunAndNudgesPreferences(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	runs, err := deps.runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, resp.RunID, runs[0].ID)
	assert.Equal(t, "Riverside Park", runs[0].ChosenName)
	assert.Equal(t, domain.CategoryOutdoor, runs[0].ChosenCategory)
	assert.False(t, runs[0].Degraded)
	assert.Equal(t, resp.Narrative, runs[0].Narrative)

	catWeight, err := deps.prefs.Get(ctx, domain.CategoryOutdoor, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, catWeight.Weight, 1e-9, "chosen category gets the implicit nudge")

	venueWeight, err := deps.prefs.Get(ctx, domain.CategoryOutdoor, resp.Chosen.Venue.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, venueWeight.Weight, 1e-9, "chosen venue gets its own nudge")

	_, err = deps.prefs.Get(ctx, domain.CategoryRestaurant, "")
	assert.ErrorIs(t, err, repository.ErrNotFound, "losing categories stay untouched")
}

func TestPlan_DryRunLeavesNoTrace(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	req := planRequestAt(mondayJune1())
	req.DryRun = true
	resp, err := svc.Plan(ctx, req)
	require.NoError(t, err)

	assert.Empty(t, resp.CalendarEventID, "dry run must not create calendar events")
	assert.NotEmpty(t, resp.Narrative, "dry run still phrases the plan")

	runs, err := deps.runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, runs, "dry run must not record history")

	weights, err := deps.prefs.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, weights, "dry run must not move preference weights")
}

func TestPlan_SevereWeatherPrefersIndoor(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherRain}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.True(t, resp.Chosen.Venue.Indoor, "rain restricts the plan to indoor venues")
	assert.Equal(t, "Fog Lifter Coffee", resp.Chosen.Venue.Name)
	assert.False(t, resp.WeatherFilterBypassed)
	for _, ru := range resp.RunnerUps {
		assert.True(t, ru.Venue.Indoor, "outdoor venues are filtered, not just outranked")
	}
}

func TestPlan_AllOutdoorInStormBypassesWeatherFilter(t *testing.T) {
	deps := newPlanDeps(t)
	venues := []domain.VenueCandidate{
		testutil.NewTestVenue("North Meadow", domain.CategoryOutdoor, testutil.WithRating(4.2)),
		testutil.NewTestVenue("Harbor Walk", domain.CategoryOutdoor, testutil.WithRating(4.6)),
	}
	svc := deps.service(weather.Mock{Condition: domain.WeatherStorm}, stubSource{venues: venues}, PlanOptions{})
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err, "a run with only outdoor venues still produces a plan")

	assert.True(t, resp.WeatherFilterBypassed)
	assert.True(t, resp.Degraded())
	assert.Equal(t, "Harbor Walk", resp.Chosen.Venue.Name)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "weather filter bypassed")

	runs, err := deps.runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Degraded, "history keeps the degraded flag")
}

func TestPlan_PriceFilterDropsExpensiveVenues(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	req := planRequestAt(mondayJune1())
	req.MaxPrice = 0
	resp, err := svc.Plan(ctx, req)
	require.NoError(t, err)

	assert.False(t, resp.PriceFilterBypassed)
	assert.Equal(t, "Riverside Park", resp.Chosen.Venue.Name)
	require.Len(t, resp.RunnerUps, 1, "only the two free venues survive max price 0")
	assert.Equal(t, "Ridge Trailhead", resp.RunnerUps[0].Venue.Name)
}

func TestPlan_PriceFilterBypassWhenEverythingExceedsBudget(t *testing.T) {
	deps := newPlanDeps(t)
	venues := []domain.VenueCandidate{
		testutil.NewTestVenue("Tasting Room", domain.CategoryRestaurant, testutil.WithPriceLevel(4), testutil.WithRating(4.9)),
		testutil.NewTestVenue("Supper Club", domain.CategoryRestaurant, testutil.WithPriceLevel(3), testutil.WithRating(4.1)),
	}
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, stubSource{venues: venues}, PlanOptions{})
	ctx := context.Background()

	req := planRequestAt(mondayJune1())
	req.MaxPrice = 1
	resp, err := svc.Plan(ctx, req)
	require.NoError(t, err)

	assert.True(t, resp.PriceFilterBypassed)
	assert.True(t, resp.Degraded())
	assert.Equal(t, "Tasting Room", resp.Chosen.Venue.Name,
		"with the filter bypassed the best venue wins regardless of price")
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "price filter bypassed")
}

func TestPlan_EmptyCandidateListFailsWithNoCandidates(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, stubSource{}, PlanOptions{})

	_, err := svc.Plan(context.Background(), planRequestAt(mondayJune1()))
	require.Error(t, err)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrNoCandidates, planErr.Code)
	assert.Contains(t, planErr.Message, "10001")
}

func TestPlan_VenueSearchFailure(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear},
		stubSource{err: errors.New("places quota exhausted")}, PlanOptions{})

	_, err := svc.Plan(context.Background(), planRequestAt(mondayJune1()))
	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrVenueSearch, planErr.Code)
	assert.Contains(t, planErr.Message, "quota")
}

func TestPlan_ForecastFailureFailsRunByDefault(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Err: errors.New("weather api down")}, places.MockSource{}, PlanOptions{})

	_, err := svc.Plan(context.Background(), planRequestAt(mondayJune1()))
	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrWeatherLookup, planErr.Code)
}

func TestPlan_ForecastFailureWithFallbackPlansClear(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Err: errors.New("weather api down")}, places.MockSource{},
		PlanOptions{WeatherFallback: true})

	resp, err := svc.Plan(context.Background(), planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Equal(t, domain.WeatherClear, resp.Weather)
	assert.True(t, resp.WeatherFallbackUsed)
	assert.True(t, resp.Degraded())
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "forecast unavailable")
}

func TestPlan_WeatherOverrideSkipsForecast(t *testing.T) {
	deps := newPlanDeps(t)
	// The forecast client would fail the run if it were consulted.
	svc := deps.service(weather.Mock{Err: errors.New("should not be called")}, places.MockSource{}, PlanOptions{})

	rain := domain.WeatherRain
	req := planRequestAt(mondayJune1())
	req.Weather = &rain
	resp, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.WeatherRain, resp.Weather)
	assert.True(t, resp.Chosen.Venue.Indoor)
	assert.False(t, resp.WeatherFallbackUsed)
}

func TestPlan_InvalidMaxPrice(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})

	for _, price := range []int{-1, 5, 12} {
		req := planRequestAt(mondayJune1())
		req.MaxPrice = price
		_, err := svc.Plan(context.Background(), req)

		var planErr *contract.PlanError
		require.ErrorAs(t, err, &planErr, "max price %d must be rejected", price)
		assert.Equal(t, contract.ErrInvalidMaxPrice, planErr.Code)
	}
}

func TestPlan_InvalidWeatherOverride(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})

	sleet := domain.WeatherCondition("sleet")
	req := planRequestAt(mondayJune1())
	req.Weather = &sleet
	_, err := svc.Plan(context.Background(), req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInvalidWeather, planErr.Code)
	assert.Contains(t, planErr.Message, "sleet")
}

func TestPlan_RecordFailureIsNonFatal(t *testing.T) {
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)
	runs := repository.NewSQLitePlanRunRepo(database)
	scoring := repository.NewSQLiteScoringConfigRepo(database)
	ctx := context.Background()

	// Exec #1 inside the recording tx is the plan_runs insert.
	failUoW := &testutil.FaultyUoW{
		DB:     database,
		FailOn: 1,
		Err:    fmt.Errorf("injected insert failure"),
	}
	svc := NewPlanService(prefs, scoring,
		weather.Mock{Condition: domain.WeatherClear}, places.MockSource{},
		intelligence.NewNarrativeService(nil, false),
		calendar.DemoWriter{Log: zerolog.Nop()},
		notify.DemoSender{Log: zerolog.Nop()},
		failUoW, PlanOptions{})

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err, "a failed history write must not fail the delivered plan")

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "plan not recorded")
	assert.Contains(t, resp.Warnings[0], "injected insert failure")

	stored, err := runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestPlan_NudgeFailureRollsBackRunRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)
	runs := repository.NewSQLitePlanRunRepo(database)
	scoring := repository.NewSQLiteScoringConfigRepo(database)
	ctx := context.Background()

	// Exec #1 = plan_runs insert, #2 = category weight write. Failing #2
	// must roll back the already-inserted run row.
	failUoW := &testutil.FaultyUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected weight failure"),
	}
	svc := NewPlanService(prefs, scoring,
		weather.Mock{Condition: domain.WeatherClear}, places.MockSource{},
		intelligence.NewNarrativeService(nil, false),
		calendar.DemoWriter{Log: zerolog.Nop()},
		notify.DemoSender{Log: zerolog.Nop()},
		failUoW, PlanOptions{})

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "injected weight failure")

	stored, err := runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, stored, "run row must not survive a failed nudge")

	weights, err := prefs.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, weights)
}

func TestPlan_CalendarFailureDowngradedToWarning(t *testing.T) {
	deps := newPlanDeps(t)
	svc := NewPlanService(deps.prefs, deps.scoring,
		weather.Mock{Condition: domain.WeatherClear}, places.MockSource{},
		intelligence.NewNarrativeService(nil, false),
		failingWriter{err: errors.New("calendar api 503")},
		notify.DemoSender{Log: zerolog.Nop()},
		deps.uow, PlanOptions{})
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Empty(t, resp.CalendarEventID)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "calendar event not created")

	runs, err := deps.runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "the run is still recorded after a calendar failure")
}

func TestPlan_SMSOnlyWithPhone(t *testing.T) {
	deps := newPlanDeps(t)
	sender := &recordingSender{}
	svc := NewPlanService(deps.prefs, deps.scoring,
		weather.Mock{Condition: domain.WeatherClear}, places.MockSource{},
		intelligence.NewNarrativeService(nil, false),
		calendar.DemoWriter{Log: zerolog.Nop()},
		sender, deps.uow, PlanOptions{})
	ctx := context.Background()

	_, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)
	assert.Empty(t, sender.to, "no phone, no SMS")

	req := planRequestAt(mondayJune1())
	req.Phone = "+15550100"
	resp, err := svc.Plan(ctx, req)
	require.NoError(t, err)

	require.Len(t, sender.to, 1)
	assert.Equal(t, "+15550100", sender.to[0])
	assert.Equal(t, resp.SMSBody, sender.bodies[0])
}

func TestPlan_SMSFailureDowngradedToWarning(t *testing.T) {
	deps := newPlanDeps(t)
	sender := &recordingSender{err: errors.New("twilio 401")}
	svc := NewPlanService(deps.prefs, deps.scoring,
		weather.Mock{Condition: domain.WeatherClear}, places.MockSource{},
		intelligence.NewNarrativeService(nil, false),
		calendar.DemoWriter{Log: zerolog.Nop()},
		sender, deps.uow, PlanOptions{})

	req := planRequestAt(mondayJune1())
	req.Phone = "+15550100"
	resp, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "SMS")
	assert.Contains(t, resp.Warnings[0], "twilio 401")
}

func TestPlan_LearnedWeightsSteerSelection(t *testing.T) {
	deps := newPlanDeps(t)
	ctx := context.Background()
	require.NoError(t, deps.prefs.Upsert(ctx, testutil.NewTestWeight(domain.CategoryCafe, 3.0)))

	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Equal(t, "Fog Lifter Coffee", resp.Chosen.Venue.Name,
		"a strong cafe weight outweighs the park's rating edge")
}

func TestPlan_StoredProfileControlsScoring(t *testing.T) {
	deps := newPlanDeps(t)
	ctx := context.Background()
	require.NoError(t, deps.prefs.Upsert(ctx, testutil.NewTestWeight(domain.CategoryCafe, 3.0)))

	profile, err := deps.scoring.Get(ctx)
	require.NoError(t, err)
	profile.WPreference = 0
	require.NoError(t, deps.scoring.Update(ctx, profile))

	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Equal(t, "Riverside Park", resp.Chosen.Venue.Name,
		"zeroing the preference weight makes memory irrelevant")
}

func TestPlan_InvalidStoredProfileFailsRun(t *testing.T) {
	deps := newPlanDeps(t)
	ctx := context.Background()

	profile, err := deps.scoring.Get(ctx)
	require.NoError(t, err)
	profile.WRating = -1
	require.NoError(t, deps.scoring.Update(ctx, profile))

	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	_, err = svc.Plan(ctx, planRequestAt(mondayJune1()))

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInternalError, planErr.Code)
	assert.Contains(t, planErr.Message, "non-negative")
}

func TestPlan_SecondRunBuildsOnTheFirst(t *testing.T) {
	deps := newPlanDeps(t)
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{})
	ctx := context.Background()

	first, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	second, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	assert.Equal(t, first.Chosen.Venue.ID, second.Chosen.Venue.ID)
	assert.Greater(t, second.Chosen.Score, first.Chosen.Score,
		"the implicit nudge from the first run lifts the second run's score")

	catWeight, err := deps.prefs.Get(ctx, domain.CategoryOutdoor, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, catWeight.Weight, 1e-9, "two runs accumulate two nudges")
}

func TestPlan_ObserverReceivesOutcome(t *testing.T) {
	deps := newPlanDeps(t)
	obs := &captureObserver{}
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, places.MockSource{}, PlanOptions{}, obs)
	ctx := context.Background()

	resp, err := svc.Plan(ctx, planRequestAt(mondayJune1()))
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	event := obs.events[0]
	assert.Equal(t, "plan", event.Name)
	assert.True(t, event.Success)
	assert.NoError(t, event.Err)
	assert.Equal(t, resp.RunID, event.Fields["run_id"])
	assert.Equal(t, "Riverside Park", event.Fields["venue"])
	assert.Equal(t, false, event.Fields["degraded"])
	assert.Equal(t, intelligence.SourceDeterministic, event.Fields["narrative_source"])
	assert.GreaterOrEqual(t, event.Duration, time.Duration(0))
}

func TestPlan_ObserverSeesFailures(t *testing.T) {
	deps := newPlanDeps(t)
	obs := &captureObserver{}
	svc := deps.service(weather.Mock{Condition: domain.WeatherClear}, stubSource{}, PlanOptions{}, obs)

	_, err := svc.Plan(context.Background(), planRequestAt(mondayJune1()))
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Error(t, obs.events[0].Err)
}
