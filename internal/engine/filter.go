package engine

import "github.com/Keto24/saturday-planner/internal/domain"

// FilterByWeather keeps only indoor venues under severe weather. If that
// would empty the list, the filter is bypassed: the full list comes back
// and the second return value reports the degraded condition.
func FilterByWeather(candidates []domain.VenueCandidate, cond domain.WeatherCondition) ([]domain.VenueCandidate, bool) {
	if !cond.IsSevere() {
		return candidates, false
	}
	kept := make([]domain.VenueCandidate, 0, len(candidates))
	for _, v := range candidates {
		if v.Indoor {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return candidates, true
	}
	return kept, false
}

// FilterByPrice drops venues priced above maxPrice. If that would empty
// the list, the filter is bypassed the same way FilterByWeather does.
func FilterByPrice(candidates []domain.VenueCandidate, maxPrice int) ([]domain.VenueCandidate, bool) {
	kept := make([]domain.VenueCandidate, 0, len(candidates))
	for _, v := range candidates {
		if v.PriceLevel <= maxPrice {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return candidates, true
	}
	return kept, false
}
