package domain

// ScoringProfile is the persisted weight configuration for the selection
// engine. A single row (id 'default') is seeded at migration time; operators
// tune it in place.
type ScoringProfile struct {
	ID            string
	WRating       float64
	WPreference   float64
	WPrice        float64
	ClampMin      float64
	ClampMax      float64
	ImplicitDelta float64
}
