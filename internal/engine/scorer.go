package engine

import (
	"fmt"

	"github.com/Keto24/saturday-planner/internal/domain"
)

type ScoringInput struct {
	Venue    domain.VenueCandidate
	Position int // index in the post-filter candidate list, breaks final ties
	Memory   *domain.PreferenceSnapshot
	Config   ScoringConfig
}

type ScoredVenue struct {
	Venue    domain.VenueCandidate `json:"venue"`
	Position int                   `json:"position"`
	Score    float64               `json:"score"`
	Reasons  []Reason              `json:"reasons,omitempty"`
}

// ScoreVenue computes the composite score for one candidate:
//
//	w_rating*normalizedRating + w_preference*memoryWeight - w_price*priceLevel
//
// Each factor contributes its delta plus a reason entry so callers can show
// where a score came from.
func ScoreVenue(input ScoringInput) ScoredVenue {
	result := ScoredVenue{
		Venue:    input.Venue,
		Position: input.Position,
	}

	var score float64
	factors := []func(ScoringInput) (float64, *Reason){
		scoreBaseRating,
		scorePreference,
		scorePricePenalty,
	}
	for _, f := range factors {
		delta, reason := f(input)
		score += delta
		if reason != nil {
			result.Reasons = append(result.Reasons, *reason)
		}
	}

	result.Score = score
	return result
}

func scoreBaseRating(input ScoringInput) (float64, *Reason) {
	delta := input.Config.WRating * input.Venue.NormalizedRating()
	msg := "No rating yet, scored at the midpoint"
	if input.Venue.Rating != nil {
		msg = fmt.Sprintf("Rated %.1f of 5", *input.Venue.Rating)
	}
	return delta, &Reason{
		Code:        ReasonBaseRating,
		Message:     msg,
		WeightDelta: &delta,
	}
}

func scorePreference(input ScoringInput) (float64, *Reason) {
	w := input.Memory.Weight(input.Venue.Category, input.Venue.ID)
	if w == 0 {
		return 0, nil
	}
	delta := input.Config.WPreference * w
	if delta < 0 {
		return delta, &Reason{
			Code:        ReasonPreferenceDrag,
			Message:     fmt.Sprintf("Past %s picks didn't land well", input.Venue.Category),
			WeightDelta: &delta,
		}
	}
	return delta, &Reason{
		Code:        ReasonPreferenceBoost,
		Message:     fmt.Sprintf("You've enjoyed %s picks before", input.Venue.Category),
		WeightDelta: &delta,
	}
}

func scorePricePenalty(input ScoringInput) (float64, *Reason) {
	if input.Venue.PriceLevel == 0 {
		return 0, nil
	}
	delta := -input.Config.WPrice * float64(input.Venue.PriceLevel)
	return delta, &Reason{
		Code:        ReasonPricePenalty,
		Message:     fmt.Sprintf("Price level %d of 4", input.Venue.PriceLevel),
		WeightDelta: &delta,
	}
}
