package contract

import (
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
)

type FeedbackRequest struct {
	Category domain.Category
	VenueID  string
	Delta    float64
}

// NewFeedbackRequest builds an explicit like/dislike for a category,
// optionally scoped to a single venue. Likes add +1.0, dislikes -1.0.
func NewFeedbackRequest(category string, venueID string, like bool) FeedbackRequest {
	delta := 1.0
	if !like {
		delta = -1.0
	}
	return FeedbackRequest{
		Category: domain.Category(category),
		VenueID:  venueID,
		Delta:    delta,
	}
}

type FeedbackResponse struct {
	Category  domain.Category `json:"category"`
	VenueID   string          `json:"venue_id,omitempty"`
	NewWeight float64         `json:"new_weight"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type FeedbackErrorCode string

const (
	FeedbackErrInvalidCategory FeedbackErrorCode = "INVALID_CATEGORY"
	FeedbackErrInvalidDelta    FeedbackErrorCode = "INVALID_DELTA"
	FeedbackErrInternal        FeedbackErrorCode = "INTERNAL_ERROR"
)

type FeedbackError struct {
	Code    FeedbackErrorCode `json:"code"`
	Message string            `json:"message"`
}

func (e *FeedbackError) Error() string {
	return string(e.Code) + ": " + e.Message
}
