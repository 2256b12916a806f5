package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/repository"
)

type feedbackService struct {
	scoring  repository.ScoringConfigRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewFeedbackService(
	scoring repository.ScoringConfigRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) FeedbackService {
	return &feedbackService{
		scoring:  scoring,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *feedbackService) Record(ctx context.Context, req contract.FeedbackRequest) (resp *contract.FeedbackResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"category": string(req.Category),
		"delta":    req.Delta,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-feedback",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	clampMin, clampMax, err := s.clampBounds(ctx)
	if err != nil {
		return nil, &contract.FeedbackError{
			Code:    contract.FeedbackErrInternal,
			Message: err.Error(),
		}
	}

	if !domain.ValidCategories[string(req.Category)] {
		return nil, &contract.FeedbackError{
			Code:    contract.FeedbackErrInvalidCategory,
			Message: fmt.Sprintf("unknown category '%s'", req.Category),
		}
	}
	if err = validateDelta(req.Delta, clampMin, clampMax); err != nil {
		return nil, err
	}

	var newWeight float64
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPrefs := repository.NewSQLitePreferenceRepo(tx)
		w, txErr := txPrefs.ApplyDelta(ctx, req.Category, req.VenueID, req.Delta, clampMin, clampMax)
		if txErr != nil {
			return txErr
		}
		newWeight = w
		return nil
	})
	if err != nil {
		return nil, &contract.FeedbackError{
			Code:    contract.FeedbackErrInternal,
			Message: err.Error(),
		}
	}

	fields["new_weight"] = newWeight
	return &contract.FeedbackResponse{
		Category:  req.Category,
		VenueID:   req.VenueID,
		NewWeight: newWeight,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// clampBounds reads the clamp range from the scoring profile so feedback
// and the implicit nudge share one configuration. A missing row uses the
// built-in defaults.
func (s *feedbackService) clampBounds(ctx context.Context) (float64, float64, error) {
	profile, err := s.scoring.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return -5.0, 5.0, nil
		}
		return 0, 0, fmt.Errorf("loading scoring config: %w", err)
	}
	return profile.ClampMin, profile.ClampMax, nil
}

// validateDelta rejects zero, non-finite, and out-of-range nudges. A single
// piece of feedback may not move a weight further than the clamp range
// allows in total.
func validateDelta(delta, clampMin, clampMax float64) error {
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return &contract.FeedbackError{
			Code:    contract.FeedbackErrInvalidDelta,
			Message: fmt.Sprintf("delta must be a non-zero finite number, got %v", delta),
		}
	}
	if delta < clampMin || delta > clampMax {
		return &contract.FeedbackError{
			Code:    contract.FeedbackErrInvalidDelta,
			Message: fmt.Sprintf("delta %.2f outside allowed range [%.1f, %.1f]", delta, clampMin, clampMax),
		}
	}
	return nil
}
