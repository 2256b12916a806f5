package engine

import "fmt"

// ScoringConfig carries the weight set and memory bounds for one run.
// All weights are non-negative; the price term's sign is fixed in the
// formula, not in the weight.
type ScoringConfig struct {
	WRating       float64
	WPreference   float64
	WPrice        float64
	ClampMin      float64
	ClampMax      float64
	ImplicitDelta float64
}

func DefaultConfig() ScoringConfig {
	return ScoringConfig{
		WRating:       2.0,
		WPreference:   1.0,
		WPrice:        0.25,
		ClampMin:      -5.0,
		ClampMax:      5.0,
		ImplicitDelta: 0.25,
	}
}

func (c ScoringConfig) Validate() error {
	if c.WRating < 0 || c.WPreference < 0 || c.WPrice < 0 {
		return fmt.Errorf("scoring weights must be non-negative (rating=%.2f preference=%.2f price=%.2f)",
			c.WRating, c.WPreference, c.WPrice)
	}
	if c.ClampMin >= c.ClampMax {
		return fmt.Errorf("clamp range [%.2f, %.2f] is empty", c.ClampMin, c.ClampMax)
	}
	return nil
}
