package testutil

import (
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/google/uuid"
)

// Venue options
type VenueOption func(*domain.VenueCandidate)

func WithRating(r float64) VenueOption {
	return func(v *domain.VenueCandidate) {
		v.Rating = &r
	}
}

func WithoutRating() VenueOption {
	return func(v *domain.VenueCandidate) {
		v.Rating = nil
	}
}

func WithPriceLevel(p int) VenueOption {
	return func(v *domain.VenueCandidate) {
		v.PriceLevel = p
	}
}

func WithIndoor(indoor bool) VenueOption {
	return func(v *domain.VenueCandidate) {
		v.Indoor = indoor
	}
}

func WithAddress(addr string) VenueOption {
	return func(v *domain.VenueCandidate) {
		v.Address = addr
	}
}

// NewTestVenue builds a venue candidate with sane defaults: rated 4.0,
// price level 1, indoor unless the category says otherwise.
func NewTestVenue(name string, category domain.Category, opts ...VenueOption) domain.VenueCandidate {
	rating := 4.0
	v := domain.VenueCandidate{
		ID:         uuid.New().String(),
		Name:       name,
		Address:    "123 Test St",
		Category:   category,
		Rating:     &rating,
		PriceLevel: 1,
		Indoor:     category != domain.CategoryOutdoor,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// PreferenceWeight options
type WeightOption func(*domain.PreferenceWeight)

func WithVenueID(id string) WeightOption {
	return func(w *domain.PreferenceWeight) {
		w.VenueID = id
	}
}

func WithUpdatedAt(t time.Time) WeightOption {
	return func(w *domain.PreferenceWeight) {
		w.UpdatedAt = t
	}
}

func NewTestWeight(category domain.Category, weight float64, opts ...WeightOption) *domain.PreferenceWeight {
	w := &domain.PreferenceWeight{
		Category:  category,
		Weight:    weight,
		UpdatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PlanRun options
type RunOption func(*domain.PlanRun)

func WithRunCreatedAt(t time.Time) RunOption {
	return func(r *domain.PlanRun) {
		r.CreatedAt = t
	}
}

func WithRunDegraded() RunOption {
	return func(r *domain.PlanRun) {
		r.Degraded = true
	}
}

func WithRunNarrative(n string) RunOption {
	return func(r *domain.PlanRun) {
		r.Narrative = n
	}
}

func NewTestRun(zip string, weather domain.WeatherCondition, opts ...RunOption) *domain.PlanRun {
	r := &domain.PlanRun{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		Zip:            zip,
		Weather:        weather,
		ChosenVenueID:  uuid.New().String(),
		ChosenName:     "Test Venue",
		ChosenCategory: domain.CategoryCafe,
		Score:          1.5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
