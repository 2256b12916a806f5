package domain

import "time"

// PlanRun is the persisted record of one completed planning run, kept for
// the history surface. The engine itself never writes these.
type PlanRun struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Zip            string           `json:"zip"`
	Weather        WeatherCondition `json:"weather"`
	ChosenVenueID  string           `json:"chosen_venue_id,omitempty"`
	ChosenName     string           `json:"chosen_name"`
	ChosenCategory Category         `json:"chosen_category"`
	Score          float64          `json:"score"`
	Degraded       bool             `json:"degraded"`
	Narrative      string           `json:"narrative,omitempty"`
}
