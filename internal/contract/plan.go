package contract

import (
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
)

type PlanRequest struct {
	Zip         string
	RadiusMiles int
	MaxPrice    int
	Phone       string
	Categories  []domain.Category
	Weather     *domain.WeatherCondition // override; nil means ask the forecast adapter
	DryRun      bool
	Now         *time.Time
}

func NewPlanRequest(zip string) PlanRequest {
	return PlanRequest{
		Zip:         domain.CoalesceStr(zip, "10001"),
		RadiusMiles: 5,
		MaxPrice:    3,
		Categories: []domain.Category{
			domain.CategoryRestaurant,
			domain.CategoryOutdoor,
			domain.CategoryEntertainment,
			domain.CategoryIndoorActivity,
			domain.CategoryCafe,
		},
	}
}

type PlanResponse struct {
	GeneratedAt           time.Time               `json:"generated_at"`
	RunID                 string                  `json:"run_id,omitempty"`
	Zip                   string                  `json:"zip"`
	Weather               domain.WeatherCondition `json:"weather"`
	Chosen                ScoredVenue             `json:"chosen"`
	RunnerUps             []ScoredVenue           `json:"runner_ups,omitempty"`
	WeatherFilterBypassed bool                    `json:"weather_filter_bypassed"`
	PriceFilterBypassed   bool                    `json:"price_filter_bypassed"`
	WeatherFallbackUsed   bool                    `json:"weather_fallback_used"`
	Narrative             string                  `json:"narrative"`
	SMSBody               string                  `json:"sms_body,omitempty"`
	CalendarEventID       string                  `json:"calendar_event_id,omitempty"`
	ScheduledFor          time.Time               `json:"scheduled_for"`
	Warnings              []string                `json:"warnings,omitempty"`
}

// Degraded reports whether the plan was produced under any bypassed filter
// or fallback condition.
func (r *PlanResponse) Degraded() bool {
	return r.WeatherFilterBypassed || r.PriceFilterBypassed || r.WeatherFallbackUsed
}

type PlanErrorCode string

const (
	ErrInvalidMaxPrice PlanErrorCode = "INVALID_MAX_PRICE"
	ErrInvalidWeather  PlanErrorCode = "INVALID_WEATHER"
	ErrNoCandidates    PlanErrorCode = "NO_CANDIDATES"
	ErrWeatherLookup   PlanErrorCode = "WEATHER_LOOKUP"
	ErrVenueSearch     PlanErrorCode = "VENUE_SEARCH"
	ErrInternalError   PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode `json:"code"`
	Message string        `json:"message"`
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
