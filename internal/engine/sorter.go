package engine

import "sort"

// CanonicalSort orders scored venues by the deterministic canonical rules:
// 1. Score: higher first
// 2. Rating: higher first (missing counts as the midpoint)
// 3. Price level: lower first
// 4. Input position: earlier first
func CanonicalSort(venues []ScoredVenue) {
	sort.SliceStable(venues, func(i, j int) bool {
		a, b := venues[i], venues[j]

		// 1. Score (higher first)
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// 2. Rating (higher first)
		ratingA, ratingB := a.Venue.NormalizedRating(), b.Venue.NormalizedRating()
		if ratingA != ratingB {
			return ratingA > ratingB
		}

		// 3. Price level (lower first)
		if a.Venue.PriceLevel != b.Venue.PriceLevel {
			return a.Venue.PriceLevel < b.Venue.PriceLevel
		}

		// 4. Input position (earlier first)
		return a.Position < b.Position
	})
}
