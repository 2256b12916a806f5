package places

import (
	"context"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/rs/zerolog"
)

// SearchQuery describes one venue discovery request.
type SearchQuery struct {
	Zip         string
	RadiusMiles int
	// Categories to search, in order. Order matters: when the same place
	// shows up under two categories, the first one claims it.
	Categories []domain.Category
	// MaxPrice is forwarded to the places API as a hint. The selection
	// engine applies its own price gate, so this never drops a run to zero
	// candidates on its own.
	MaxPrice int
}

// Source finds venue candidates near a zip code. Implementations own
// deduplication: a place id appears at most once in the returned slice.
type Source interface {
	Search(ctx context.Context, query SearchQuery) ([]domain.VenueCandidate, error)
}

// Config holds Google Places connection settings.
type Config struct {
	APIKey     string
	BaseURL    string // default https://maps.googleapis.com/maps/api
	TimeoutSec int    // default 10
}

// NewSource returns a Google Places backed source, or the built-in sample
// venues when no API key is configured.
func NewSource(cfg Config, logger zerolog.Logger) Source {
	if cfg.APIKey == "" {
		logger.Warn().Msg("places API key not set, using built-in sample venues")
		return MockSource{}
	}
	return NewGooglePlacesSource(cfg, logger)
}

// categoryMapping pins each planner category to a Google Places type and
// whether venues of that type count as indoor for the weather gate.
var categoryMapping = map[domain.Category]struct {
	placeType string
	indoor    bool
}{
	domain.CategoryRestaurant:     {"restaurant", true},
	domain.CategoryOutdoor:        {"park", false},
	domain.CategoryEntertainment:  {"movie_theater", true},
	domain.CategoryIndoorActivity: {"museum", true},
	domain.CategoryCafe:           {"cafe", true},
	domain.CategoryMuseum:         {"museum", true},
}
