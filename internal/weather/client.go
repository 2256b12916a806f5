package weather

import (
	"context"
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/rs/zerolog"
)

// Client reports the expected conditions for a zip code on a given day.
type Client interface {
	Forecast(ctx context.Context, zip string, date time.Time) (domain.WeatherCondition, error)
}

// Config holds WeatherAPI.com connection settings.
type Config struct {
	APIKey     string
	BaseURL    string // default https://api.weatherapi.com/v1
	TimeoutSec int    // default 10
}

// NewClient returns a WeatherAPI-backed client, or a fixed clear-sky mock
// when no API key is configured. Keyless setups still plan; they just skip
// the weather gate.
func NewClient(cfg Config, logger zerolog.Logger) Client {
	if cfg.APIKey == "" {
		logger.Warn().Msg("weather API key not set, forecasts default to clear")
		return Mock{Condition: domain.WeatherClear}
	}
	return NewWeatherAPIClient(cfg, logger)
}

// Mock is a Client that always reports the same condition. Zero Err means
// the forecast always succeeds.
type Mock struct {
	Condition domain.WeatherCondition
	Err       error
}

func (m Mock) Forecast(ctx context.Context, zip string, date time.Time) (domain.WeatherCondition, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Condition, nil
}
