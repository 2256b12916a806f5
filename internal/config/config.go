package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the planner binary needs: request defaults,
// storage, server settings, and the credentials for each external service.
// Values come from config.yml when present, otherwise from the environment.
type Config struct {
	Planner  PlannerConfig  `yaml:"planner"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Weather  WeatherConfig  `yaml:"weather"`
	Places   PlacesConfig   `yaml:"places"`
	Calendar CalendarConfig `yaml:"calendar"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Log      LogConfig      `yaml:"log"`
}

// PlannerConfig carries the per-run defaults. CLI flags and request bodies
// override these.
type PlannerConfig struct {
	Zip         string `yaml:"zip" env:"DEFAULT_ZIP_CODE" env-default:"10001"`
	RadiusMiles int    `yaml:"radius_miles" env:"DEFAULT_RADIUS_MILES" env-default:"5"`
	MaxPrice    int    `yaml:"max_price" env:"DEFAULT_MAX_PRICE" env-default:"3"`
	Phone       string `yaml:"phone" env:"NOTIFICATION_TO"`
	// WeatherFallback plans for clear weather when the forecast lookup
	// fails, instead of failing the run.
	WeatherFallback bool `yaml:"weather_fallback" env:"SATURDAY_WEATHER_FALLBACK" env-default:"false"`
}

type DatabaseConfig struct {
	// Path to the SQLite file. Empty resolves to ~/.saturday/saturday.db.
	Path string `yaml:"path" env:"SATURDAY_DB"`
}

type ServerConfig struct {
	Port               string `yaml:"port" env:"SATURDAY_PORT" env-default:"8080"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

type WeatherConfig struct {
	APIKey     string `yaml:"api_key" env:"WEATHER_API_KEY"`
	BaseURL    string `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.weatherapi.com/v1"`
	TimeoutSec int    `yaml:"timeout_sec" env:"WEATHER_TIMEOUT_SEC" env-default:"10"`
}

type PlacesConfig struct {
	APIKey     string `yaml:"api_key" env:"PLACES_API_KEY"`
	BaseURL    string `yaml:"base_url" env:"PLACES_BASE_URL" env-default:"https://maps.googleapis.com/maps/api"`
	TimeoutSec int    `yaml:"timeout_sec" env:"PLACES_TIMEOUT_SEC" env-default:"10"`
}

type CalendarConfig struct {
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
	TokenFile       string `yaml:"token_file" env:"GOOGLE_TOKEN_FILE"`
	CalendarID      string `yaml:"calendar_id" env:"DEFAULT_CALENDAR_ID" env-default:"primary"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	From       string `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads ./config.yml when present, otherwise environment variables
// only. LLM settings are separate; see the llm package.
func Load() (*Config, error) {
	return LoadPath("config.yml")
}

// LoadPath is Load with an explicit config file location.
func LoadPath(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("loading configuration from environment: %w", err)
	}
	return &cfg, nil
}

// DatabasePath resolves the SQLite file location, defaulting to
// ~/.saturday/saturday.db when unconfigured.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".saturday", "saturday.db"), nil
}
