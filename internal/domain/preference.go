package domain

import "time"

// PreferenceWeight is one row of the persistent preference memory. VenueID
// is empty for the category-level weight.
type PreferenceWeight struct {
	Category  Category  `json:"category"`
	VenueID   string    `json:"venue_id,omitempty"`
	Weight    float64   `json:"weight"`
	UpdatedAt time.Time `json:"updated_at"`
}

type prefKey struct {
	category Category
	venueID  string
}

// PreferenceSnapshot is the in-memory view of the preference store taken at
// the start of a plan run. The selection engine only reads it; the store is
// mutated exclusively through the post-run outcome path.
type PreferenceSnapshot struct {
	weights map[prefKey]float64
}

func NewPreferenceSnapshot(rows []PreferenceWeight) *PreferenceSnapshot {
	s := &PreferenceSnapshot{weights: make(map[prefKey]float64, len(rows))}
	for _, r := range rows {
		s.weights[prefKey{category: r.Category, venueID: r.VenueID}] = r.Weight
	}
	return s
}

// EmptyPreferenceSnapshot returns a snapshot with no learned weights.
// Every lookup yields zero, so scoring degenerates to rating and price.
func EmptyPreferenceSnapshot() *PreferenceSnapshot {
	return &PreferenceSnapshot{weights: map[prefKey]float64{}}
}

// Weight combines the category-level weight with the venue-level weight,
// each defaulting to zero when absent.
func (s *PreferenceSnapshot) Weight(cat Category, venueID string) float64 {
	w := s.weights[prefKey{category: cat}]
	if venueID != "" {
		w += s.weights[prefKey{category: cat, venueID: venueID}]
	}
	return w
}

// Len reports how many weight rows the snapshot carries.
func (s *PreferenceSnapshot) Len() int {
	return len(s.weights)
}
