package services

import (
	"context"
	"fmt"
	"time"

	"productiv/internal/core"
	"productiv/internal/storage"
)

// HabitService owns habit writes. Completions and streaks feed the cached
// dashboard charts, so every write drops the user's cache entries.
type HabitService struct {
	repo   *storage.SQLiteRepository
	charts *ChartCache
	now    func() time.Time
}

func NewHabitService(repo *storage.SQLiteRepository, charts *ChartCache) *HabitService {
	return &HabitService{repo: repo, charts: charts, now: time.Now}
}

func (s *HabitService) Create(ctx context.Context, h *core.Habit) error {
	if err := s.repo.CreateHabit(ctx, h); err != nil {
		return err
	}
	s.invalidateCharts(h.UserID)
	return nil
}

// Update persists the edit and returns the habit with its current streak
// and completions attached.
func (s *HabitService) Update(ctx context.Context, h *core.Habit) (core.Habit, error) {
	if err := s.repo.UpdateHabit(ctx, h); err != nil {
		return core.Habit{}, err
	}
	s.invalidateCharts(h.UserID)
	return s.repo.GetHabit(ctx, h.UserID, h.ID)
}

func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteHabit(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCharts(userID)
	return nil
}

// Complete records today's completion for the habit and recomputes its
// streak. Returns core.ErrAlreadyCompleted when a completion already
// exists within today's local day window.
func (s *HabitService) Complete(ctx context.Context, userID, habitID string) (core.HabitCompletion, int, error) {
	habit, err := s.repo.GetHabit(ctx, userID, habitID)
	if err != nil {
		return core.HabitCompletion{}, 0, err
	}

	now := s.now()
	start, end := core.DayWindow(now)
	n, err := s.repo.CountCompletionsInWindow(ctx, habit.ID, start, end)
	if err != nil {
		return core.HabitCompletion{}, 0, err
	}
	if n > 0 {
		return core.HabitCompletion{}, 0, core.ErrAlreadyCompleted
	}

	completion := core.HabitCompletion{HabitID: habit.ID, Date: now}
	if err := s.repo.CreateCompletion(ctx, &completion); err != nil {
		return core.HabitCompletion{}, 0, err
	}

	streak, err := s.recomputeStreak(ctx, habit.ID, now)
	if err != nil {
		return core.HabitCompletion{}, 0, err
	}
	s.invalidateCharts(userID)

	return completion, streak, nil
}

func (s *HabitService) recomputeStreak(ctx context.Context, habitID string, now time.Time) (int, error) {
	completions, err := s.repo.ListCompletions(ctx, habitID, 0)
	if err != nil {
		return 0, fmt.Errorf("list completions: %w", err)
	}

	dates := make([]time.Time, len(completions))
	for i, c := range completions {
		dates[i] = c.Date
	}

	streak := core.Streak(dates, now)
	if err := s.repo.UpdateStreak(ctx, habitID, streak); err != nil {
		return 0, err
	}
	return streak, nil
}

func (s *HabitService) invalidateCharts(userID string) {
	if s.charts != nil {
		s.charts.InvalidatePrefix(userID + ":")
	}
}
