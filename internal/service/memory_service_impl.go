package service

import (
	"context"
	"time"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/repository"
)

type memoryService struct {
	prefs    repository.PreferenceRepo
	observer UseCaseObserver
}

func NewMemoryService(prefs repository.PreferenceRepo, observers ...UseCaseObserver) MemoryService {
	return &memoryService{
		prefs:    prefs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *memoryService) List(ctx context.Context) ([]domain.PreferenceWeight, error) {
	return s.prefs.LoadAll(ctx)
}

func (s *memoryService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset-memory",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()
	err = s.prefs.Reset(ctx)
	return err
}
