package service

import (
	"context"

	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/repository"
)

const defaultHistoryLimit = 10

type historyService struct {
	runs repository.PlanRunRepo
}

func NewHistoryService(runs repository.PlanRunRepo) HistoryService {
	return &historyService{runs: runs}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.runs.ListRecent(ctx, limit)
}
