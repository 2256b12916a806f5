package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"

	metersPerMile = 1609.34

	// resultCap bounds each category search. Ten venues per category is
	// plenty for one Saturday and keeps scoring output readable.
	resultCap = 10

	// defaultPriceLevel stands in when Google omits price_level. Unpriced
	// places read as cheap rather than free so the penalty factor still
	// distinguishes them from parks.
	defaultPriceLevel = 1
)

// GooglePlacesSource implements Source against the Google Geocoding and
// Places nearby search APIs.
type GooglePlacesSource struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// NewGooglePlacesSource creates a source with the given settings, filling in
// defaults for any zero fields.
func NewGooglePlacesSource(cfg Config, logger zerolog.Logger) *GooglePlacesSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 10
	}
	return &GooglePlacesSource{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:  logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID    string   `json:"place_id"`
		Name       string   `json:"name"`
		Vicinity   string   `json:"vicinity"`
		Rating     *float64 `json:"rating"`
		PriceLevel *int     `json:"price_level"`
	} `json:"results"`
}

func (s *GooglePlacesSource) Search(ctx context.Context, query SearchQuery) ([]domain.VenueCandidate, error) {
	lat, lng, err := s.geocode(ctx, query.Zip)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query.Zip, err)
	}

	seen := make(map[string]bool)
	var venues []domain.VenueCandidate
	for _, cat := range query.Categories {
		mapping, ok := categoryMapping[cat]
		if !ok {
			s.log.Warn().Str("category", string(cat)).Msg("no place type mapping, skipping")
			continue
		}

		resp, err := s.nearby(ctx, lat, lng, mapping.placeType, query)
		if err != nil {
			return nil, fmt.Errorf("searching %s venues: %w", cat, err)
		}

		for i, place := range resp.Results {
			if i >= resultCap {
				break
			}
			if seen[place.PlaceID] {
				continue
			}
			seen[place.PlaceID] = true

			venues = append(venues, domain.VenueCandidate{
				ID:         place.PlaceID,
				Name:       place.Name,
				Address:    place.Vicinity,
				Category:   cat,
				Rating:     place.Rating,
				PriceLevel: domain.IntFromPtrWithDefault(defaultPriceLevel, place.PriceLevel),
				Indoor:     mapping.indoor,
			})
		}
	}

	s.log.Debug().
		Str("zip", query.Zip).
		Int("categories", len(query.Categories)).
		Int("venues", len(venues)).
		Msg("places search complete")
	return venues, nil
}

func (s *GooglePlacesSource) geocode(ctx context.Context, zip string) (float64, float64, error) {
	u, err := url.Parse(s.cfg.BaseURL + "/geocode/json")
	if err != nil {
		return 0, 0, fmt.Errorf("parsing geocode URL: %w", err)
	}
	q := u.Query()
	q.Set("address", zip)
	q.Set("key", s.cfg.APIKey)
	u.RawQuery = q.Encode()

	var resp geocodeResponse
	if err := s.getJSON(ctx, u.String(), &resp); err != nil {
		return 0, 0, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("geocode returned status %q with %d results", resp.Status, len(resp.Results))
	}

	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

func (s *GooglePlacesSource) nearby(ctx context.Context, lat, lng float64, placeType string, query SearchQuery) (*nearbyResponse, error) {
	u, err := url.Parse(s.cfg.BaseURL + "/place/nearbysearch/json")
	if err != nil {
		return nil, fmt.Errorf("parsing nearby search URL: %w", err)
	}
	q := u.Query()
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(int(float64(query.RadiusMiles)*metersPerMile)))
	q.Set("type", placeType)
	q.Set("maxprice", strconv.Itoa(query.MaxPrice))
	q.Set("key", s.cfg.APIKey)
	u.RawQuery = q.Encode()

	var resp nearbyResponse
	if err := s.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search returned status %q: %s", resp.Status, resp.ErrorMessage)
	}
	return &resp, nil
}

func (s *GooglePlacesSource) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
