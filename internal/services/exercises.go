package services

import (
	"context"

	"productiv/internal/core"
	"productiv/internal/storage"
)

// ExerciseService owns exercise writes. Exercises are bucketed into the
// cached dashboard charts, so writes drop the user's cache entries the
// same way habit and transaction writes do.
type ExerciseService struct {
	repo   *storage.SQLiteRepository
	charts *ChartCache
}

func NewExerciseService(repo *storage.SQLiteRepository, charts *ChartCache) *ExerciseService {
	return &ExerciseService{repo: repo, charts: charts}
}

func (s *ExerciseService) List(ctx context.Context, userID string) ([]core.Exercise, error) {
	return s.repo.ListExercises(ctx, userID, nil, nil)
}

func (s *ExerciseService) Create(ctx context.Context, e *core.Exercise) error {
	if err := s.repo.CreateExercise(ctx, e); err != nil {
		return err
	}
	s.invalidateCharts(e.UserID)
	return nil
}

func (s *ExerciseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteExercise(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCharts(userID)
	return nil
}

func (s *ExerciseService) invalidateCharts(userID string) {
	if s.charts != nil {
		s.charts.InvalidatePrefix(userID + ":")
	}
}
