package contract

import "github.com/Keto24/saturday-planner/internal/engine"

type SelectionReasonCode = engine.ReasonCode

const (
	ReasonBaseRating      SelectionReasonCode = engine.ReasonBaseRating
	ReasonPreferenceBoost SelectionReasonCode = engine.ReasonPreferenceBoost
	ReasonPreferenceDrag  SelectionReasonCode = engine.ReasonPreferenceDrag
	ReasonPricePenalty    SelectionReasonCode = engine.ReasonPricePenalty
)

type SelectionReason = engine.Reason

type ScoredVenue = engine.ScoredVenue
