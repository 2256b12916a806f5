package engine

type ReasonCode string

const (
	ReasonBaseRating      ReasonCode = "BASE_RATING"
	ReasonPreferenceBoost ReasonCode = "PREFERENCE_BOOST"
	ReasonPreferenceDrag  ReasonCode = "PREFERENCE_DRAG"
	ReasonPricePenalty    ReasonCode = "PRICE_PENALTY"
)

type Reason struct {
	Code        ReasonCode `json:"code"`
	Message     string     `json:"message"`
	WeightDelta *float64   `json:"weight_delta,omitempty"`
}
