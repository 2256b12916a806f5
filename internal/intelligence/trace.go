package intelligence

import (
	"github.com/Keto24/saturday-planner/internal/contract"
)

// maxTraceRunnerUps caps how many alternates travel with the trace.
const maxTraceRunnerUps = 3

// PlanTrace is a flattened, JSON-serializable view of the deterministic
// data that produced a plan. It is the only context the narrative layer
// sees; phrasing may not reach past it.
type PlanTrace struct {
	Zip             string              `json:"zip"`
	Weather         string              `json:"weather"`
	ScheduledFor    string              `json:"scheduled_for"`
	Chosen          ChosenTraceItem     `json:"chosen"`
	RunnerUps       []RunnerUpTraceItem `json:"runner_ups,omitempty"`
	WeatherBypassed bool                `json:"weather_filter_bypassed"`
	PriceBypassed   bool                `json:"price_filter_bypassed"`
	WeatherFallback bool                `json:"weather_fallback_used"`
}

// ChosenTraceItem captures the winning venue with its scoring trace.
type ChosenTraceItem struct {
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Address    string            `json:"address,omitempty"`
	Rating     *float64          `json:"rating,omitempty"`
	PriceLevel int               `json:"price_level"`
	Indoor     bool              `json:"indoor"`
	Score      float64           `json:"score"`
	Reasons    []ReasonTraceItem `json:"reasons"`
}

// ReasonTraceItem captures a single scoring reason.
type ReasonTraceItem struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	WeightDelta *float64 `json:"weight_delta,omitempty"`
}

// RunnerUpTraceItem captures an alternate that lost the tie-break.
type RunnerUpTraceItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// BuildPlanTrace converts a PlanResponse into the trace handed to the
// narrative service.
func BuildPlanTrace(resp *contract.PlanResponse) PlanTrace {
	scheduled := "Saturday at 11:00 AM"
	if !resp.ScheduledFor.IsZero() {
		scheduled = resp.ScheduledFor.Format("Monday, January 2 at 3:04 PM")
	}

	trace := PlanTrace{
		Zip:             resp.Zip,
		Weather:         string(resp.Weather),
		ScheduledFor:    scheduled,
		Chosen:          buildChosenTrace(resp.Chosen),
		WeatherBypassed: resp.WeatherFilterBypassed,
		PriceBypassed:   resp.PriceFilterBypassed,
		WeatherFallback: resp.WeatherFallbackUsed,
	}

	for i, ru := range resp.RunnerUps {
		if i >= maxTraceRunnerUps {
			break
		}
		trace.RunnerUps = append(trace.RunnerUps, RunnerUpTraceItem{
			Name:     ru.Venue.DisplayName(),
			Category: string(ru.Venue.Category),
			Score:    ru.Score,
		})
	}

	return trace
}

func buildChosenTrace(chosen contract.ScoredVenue) ChosenTraceItem {
	item := ChosenTraceItem{
		Name:       chosen.Venue.DisplayName(),
		Category:   string(chosen.Venue.Category),
		Address:    chosen.Venue.Address,
		Rating:     chosen.Venue.Rating,
		PriceLevel: chosen.Venue.PriceLevel,
		Indoor:     chosen.Venue.Indoor,
		Score:      chosen.Score,
	}
	for _, r := range chosen.Reasons {
		item.Reasons = append(item.Reasons, ReasonTraceItem{
			Code:        string(r.Code),
			Message:     r.Message,
			WeightDelta: r.WeightDelta,
		})
	}
	return item
}
