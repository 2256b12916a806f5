package httpapi

import (
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
)

type planRequest struct {
	Zip         string   `json:"zip"`
	RadiusMiles int      `json:"radius_miles"`
	MaxPrice    *int     `json:"max_price"`
	Phone       string   `json:"phone"`
	Categories  []string `json:"categories"`
	Weather     string   `json:"weather"`
	DryRun      bool     `json:"dry_run"`
}

// toContract overlays the request onto the configured defaults. Only fields
// the caller actually sent override; max_price is a pointer because 0 (free
// venues only) is a legitimate value.
func (r planRequest) toContract(base contract.PlanRequest) contract.PlanRequest {
	req := base
	if r.Zip != "" {
		req.Zip = r.Zip
	}
	if r.RadiusMiles > 0 {
		req.RadiusMiles = r.RadiusMiles
	}
	if r.MaxPrice != nil {
		req.MaxPrice = *r.MaxPrice
	}
	if r.Phone != "" {
		req.Phone = r.Phone
	}
	req.DryRun = r.DryRun
	if len(r.Categories) > 0 {
		cats := make([]domain.Category, 0, len(r.Categories))
		for _, c := range r.Categories {
			cats = append(cats, domain.Category(c))
		}
		req.Categories = cats
	}
	if r.Weather != "" {
		cond := domain.WeatherCondition(r.Weather)
		req.Weather = &cond
	}
	return req
}

type feedbackRequest struct {
	Category string  `json:"category" binding:"required"`
	VenueID  string  `json:"venue_id"`
	Delta    float64 `json:"delta"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
