package engine

import (
	"errors"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// ErrNoCandidates is returned when Select is handed an empty candidate list.
// Callers map it to their own error contract; it is never retried here.
var ErrNoCandidates = errors.New("no venue candidates to select from")

type SelectionInput struct {
	Candidates []domain.VenueCandidate
	Weather    domain.WeatherCondition
	MaxPrice   int
	Memory     *domain.PreferenceSnapshot
	Config     ScoringConfig
}

type Result struct {
	Chosen                ScoredVenue
	RunnerUps             []ScoredVenue
	WeatherFilterBypassed bool
	PriceFilterBypassed   bool
}

// Degraded reports whether any filter had to be bypassed to keep the run alive.
func (r *Result) Degraded() bool {
	return r.WeatherFilterBypassed || r.PriceFilterBypassed
}

// Select runs the selection pipeline over the candidate list: weather
// filter, price filter, per-venue scoring, canonical ordering. The winner
// is the head of the canonical order. Select never mutates the preference
// snapshot and never calls out of process; given the same input it always
// produces the same result.
func Select(input SelectionInput) (*Result, error) {
	if len(input.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	memory := input.Memory
	if memory == nil {
		memory = domain.EmptyPreferenceSnapshot()
	}

	kept, weatherBypassed := FilterByWeather(input.Candidates, input.Weather)
	kept, priceBypassed := FilterByPrice(kept, input.MaxPrice)

	scored := make([]ScoredVenue, 0, len(kept))
	for i, v := range kept {
		scored = append(scored, ScoreVenue(ScoringInput{
			Venue:    v,
			Position: i,
			Memory:   memory,
			Config:   input.Config,
		}))
	}
	CanonicalSort(scored)

	return &Result{
		Chosen:                scored[0],
		RunnerUps:             scored[1:],
		WeatherFilterBypassed: weatherBypassed,
		PriceFilterBypassed:   priceBypassed,
	}, nil
}
