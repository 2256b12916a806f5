package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.weatherapi.com/v1"

	// WeatherAPI counts today as day 1 and serves at most 14 days.
	maxForecastDays = 14

	apiDateLayout = "2006-01-02"
)

// WeatherAPIClient implements Client against the WeatherAPI.com forecast API.
type WeatherAPIClient struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// NewWeatherAPIClient creates a client with the given settings, filling in
// defaults for any zero fields.
func NewWeatherAPIClient(cfg Config, logger zerolog.Logger) *WeatherAPIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 10
	}
	return &WeatherAPIClient{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:  logger,
	}
}

// forecastResponse decodes the subset of /v1/forecast.json we act on.
type forecastResponse struct {
	Forecast struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type forecastDay struct {
	Date string `json:"date"`
	Day  struct {
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"day"`
}

func (c *WeatherAPIClient) Forecast(ctx context.Context, zip string, date time.Time) (domain.WeatherCondition, error) {
	u, err := url.Parse(c.cfg.BaseURL + "/forecast.json")
	if err != nil {
		return "", fmt.Errorf("parsing weather URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.cfg.APIKey)
	q.Set("q", zip)
	q.Set("days", strconv.Itoa(daysAhead(time.Now(), date)))
	q.Set("aqi", "no")
	q.Set("alerts", "no")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading forecast response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weatherapi returned status %d: %s", resp.StatusCode, string(body))
	}

	var fr forecastResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return "", fmt.Errorf("decoding forecast response: %w", err)
	}

	day, ok := fr.dayFor(date)
	if !ok {
		return "", fmt.Errorf("no forecast data for %s", date.Format(apiDateLayout))
	}

	cond := Classify(day.Day.Condition.Text)
	c.log.Debug().
		Str("zip", zip).
		Str("condition", day.Day.Condition.Text).
		Str("classified", string(cond)).
		Msg("forecast fetched")
	return cond, nil
}

// dayFor picks the forecast entry matching the target date, or the nearest
// available day when the API horizon falls short (free plans serve 3 days).
func (fr *forecastResponse) dayFor(date time.Time) (forecastDay, bool) {
	days := fr.Forecast.ForecastDay
	if len(days) == 0 {
		return forecastDay{}, false
	}
	want := date.Format(apiDateLayout)
	for _, d := range days {
		if d.Date == want {
			return d, true
		}
	}
	return days[len(days)-1], true
}

// daysAhead converts a target date into the WeatherAPI days parameter,
// counting today as 1 and clamping to the API horizon.
func daysAhead(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	d := int(targetDay.Sub(nowDay).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	if d > maxForecastDays {
		return maxForecastDays
	}
	return d
}

// Classify maps a WeatherAPI condition description onto the condition set the
// planner understands. When a description straddles classes ("patchy rain
// with thunder") the most severe match wins.
func Classify(text string) domain.WeatherCondition {
	s := strings.ToLower(text)
	switch {
	case containsAny(s, "snow", "sleet", "ice", "blizzard", "hurricane", "tornado"):
		return domain.WeatherExtreme
	case containsAny(s, "thunder", "storm"):
		return domain.WeatherStorm
	case containsAny(s, "rain", "drizzle", "shower"):
		return domain.WeatherRain
	case containsAny(s, "sun", "clear"):
		return domain.WeatherClear
	case containsAny(s, "cloud", "overcast"):
		return domain.WeatherCloudy
	default:
		// Mist, fog, haze and anything novel reads as a gray day.
		return domain.WeatherCloudy
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
