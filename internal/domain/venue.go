package domain

import "fmt"

// midpointRating stands in for a missing venue rating so unrated venues
// land in the middle of the scale instead of the bottom.
const midpointRating = 2.5

type VenueCandidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Category   Category `json:"category"`
	Rating     *float64 `json:"rating,omitempty"`
	PriceLevel int      `json:"price_level"`
	Indoor     bool     `json:"indoor"`
}

// NormalizedRating maps the rating onto [0,1]. A missing rating counts as
// the 2.5 midpoint, never as zero.
func (v *VenueCandidate) NormalizedRating() float64 {
	return Float64FromPtrWithDefault(midpointRating, v.Rating) / 5.0
}

// Validate checks the numeric field bounds: rating, when present, must be
// in [0,5]; price level must be in [0,4].
func (v *VenueCandidate) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("venue candidate is missing an ID")
	}
	if v.Rating != nil && (*v.Rating < 0 || *v.Rating > 5) {
		return fmt.Errorf("venue %s: rating %.2f out of range [0,5]", v.ID, *v.Rating)
	}
	if v.PriceLevel < 0 || v.PriceLevel > 4 {
		return fmt.Errorf("venue %s: price level %d out of range [0,4]", v.ID, v.PriceLevel)
	}
	return nil
}

// DisplayName returns the best human-readable label for the venue.
func (v *VenueCandidate) DisplayName() string {
	return CoalesceStr(v.Name, v.ID)
}
