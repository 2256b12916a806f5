package places

import (
	"context"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// MockSource serves a fixed venue list so the planner works without a Google
// API key. IDs are stable across runs, which lets preference memory
// accumulate against them just like real place ids.
type MockSource struct{}

func (MockSource) Search(ctx context.Context, query SearchQuery) ([]domain.VenueCandidate, error) {
	var venues []domain.VenueCandidate
	for _, cat := range query.Categories {
		venues = append(venues, sampleVenues[cat]...)
	}
	return venues, nil
}

func ratingOf(r float64) *float64 { return &r }

// sampleVenues covers every category with mixed prices and one unrated venue
// so a keyless run still exercises the whole scoring surface.
var sampleVenues = map[domain.Category][]domain.VenueCandidate{
	domain.CategoryRestaurant: {
		{ID: "mock-restaurant-1", Name: "Corner Bistro", Address: "123 Union St", Category: domain.CategoryRestaurant, Rating: ratingOf(4.5), PriceLevel: 2, Indoor: true},
		{ID: "mock-restaurant-2", Name: "Harbor Noodle House", Address: "88 Bay Ave", Category: domain.CategoryRestaurant, Rating: ratingOf(4.2), PriceLevel: 1, Indoor: true},
	},
	domain.CategoryOutdoor: {
		{ID: "mock-outdoor-1", Name: "Riverside Park", Address: "1 River Rd", Category: domain.CategoryOutdoor, Rating: ratingOf(4.8), PriceLevel: 0, Indoor: false},
		{ID: "mock-outdoor-2", Name: "Ridge Trailhead", Address: "400 Summit Way", Category: domain.CategoryOutdoor, Rating: ratingOf(4.6), PriceLevel: 0, Indoor: false},
	},
	domain.CategoryEntertainment: {
		{ID: "mock-entertainment-1", Name: "Grand Cinema", Address: "52 Main St", Category: domain.CategoryEntertainment, Rating: ratingOf(4.1), PriceLevel: 2, Indoor: true},
		{ID: "mock-entertainment-2", Name: "Pinhouse Bowling", Address: "9 Alley Ln", Category: domain.CategoryEntertainment, Rating: nil, PriceLevel: 1, Indoor: true},
	},
	domain.CategoryIndoorActivity: {
		{ID: "mock-indoor-activity-1", Name: "City Climbing Gym", Address: "17 Brick Row", Category: domain.CategoryIndoorActivity, Rating: ratingOf(4.7), PriceLevel: 2, Indoor: true},
	},
	domain.CategoryCafe: {
		{ID: "mock-cafe-1", Name: "Fog Lifter Coffee", Address: "301 Hill St", Category: domain.CategoryCafe, Rating: ratingOf(4.4), PriceLevel: 1, Indoor: true},
	},
	domain.CategoryMuseum: {
		{ID: "mock-museum-1", Name: "Museum of Modern Craft", Address: "151 3rd St", Category: domain.CategoryMuseum, Rating: ratingOf(4.6), PriceLevel: 2, Indoor: true},
	},
}
