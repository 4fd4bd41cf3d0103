package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"productiv/internal/cache"
	"productiv/internal/core"
	"productiv/internal/storage"
)

// Chart periods accepted by the dashboard.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var ErrUnknownPeriod = fmt.Errorf("unknown period")

// ChartData is the dashboard charts payload, cached per user and period.
type ChartData struct {
	Transactions []core.TransactionPoint `json:"transactions"`
	Habits       []core.HabitPoint       `json:"habits"`
	Exercises    []core.ExercisePoint    `json:"exercises"`
}

type ChartCache = cache.LRU[ChartData]

// BudgetStatus reports monthly spending against the user's budget.
type BudgetStatus struct {
	Spent      decimal.Decimal `json:"spent"`
	Total      decimal.Decimal `json:"total"`
	Percentage int             `json:"percentage"`
}

type DashboardStats struct {
	Performance   int             `json:"performance"`
	Balance       decimal.Decimal `json:"balance"`
	MonthlyBudget BudgetStatus    `json:"monthlyBudget"`
	Priorities    []core.Priority `json:"priorities"`
}

type DashboardService struct {
	repo   *storage.SQLiteRepository
	charts *ChartCache
	now    func() time.Time
}

func NewDashboardService(repo *storage.SQLiteRepository, charts *ChartCache) *DashboardService {
	return &DashboardService{repo: repo, charts: charts, now: time.Now}
}

// Stats gathers today's priority performance, the lifetime balance, the
// monthly budget position and the latest priorities. The four reads are
// independent, so they run concurrently.
func (s *DashboardService) Stats(ctx context.Context, userID string) (DashboardStats, error) {
	now := s.now()
	dayStart, dayEnd := core.DayWindow(now)
	monthStart, monthEnd := monthWindow(now)

	var (
		todays, latest []core.Priority
		all, monthly   []core.Transaction
		user           core.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todays, err = s.repo.ListPrioritiesCreatedBetween(gctx, userID, dayStart, dayEnd)
		return err
	})
	g.Go(func() (err error) {
		latest, err = s.repo.ListPriorities(gctx, userID, 3)
		return err
	})
	g.Go(func() (err error) {
		all, err = s.repo.ListTransactions(gctx, userID, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		user, err = s.repo.GetUser(gctx, userID)
		if err != nil {
			return err
		}
		monthly, err = s.repo.ListTransactions(gctx, userID, &monthStart, &monthEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	completed := 0
	for _, p := range todays {
		if p.Completed {
			completed++
		}
	}

	lifetime := summarise(all)
	spent := summarise(monthly).TotalExpenses

	return DashboardStats{
		Performance: core.PerformancePercent(completed, len(todays)),
		Balance:     core.Balance(lifetime.TotalIncome, lifetime.TotalExpenses),
		MonthlyBudget: BudgetStatus{
			Spent:      spent,
			Total:      user.MonthlyBudget,
			Percentage: core.BudgetPercent(spent, user.MonthlyBudget),
		},
		Priorities: latest,
	}, nil
}

// Charts aggregates per-day transaction, habit and exercise data for the
// period, serving from the cache when the user's data has not changed.
func (s *DashboardService) Charts(ctx context.Context, userID, period string) (ChartData, error) {
	now := s.now()
	from, err := periodStart(period, now)
	if err != nil {
		return ChartData{}, err
	}

	key := cache.Key(userID, period)
	if s.charts != nil {
		if data, ok := s.charts.Get(key); ok {
			return data, nil
		}
	}

	var (
		transactions []core.Transaction
		habits       []core.Habit
		exercises    []core.Exercise
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transactions, err = s.repo.ListTransactions(gctx, userID, &from, nil)
		return err
	})
	g.Go(func() (err error) {
		habits, err = s.repo.ListHabits(gctx, userID, 0)
		return err
	})
	g.Go(func() (err error) {
		exercises, err = s.repo.ListExercises(gctx, userID, &from, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return ChartData{}, err
	}

	for i := range habits {
		habits[i].Completions = completionsSince(habits[i].Completions, from)
	}

	data := ChartData{
		Transactions: core.BucketTransactions(transactions),
		Habits:       core.SummariseHabits(habits),
		Exercises:    core.BucketExercises(exercises),
	}

	if s.charts != nil {
		s.charts.Set(key, data)
	}
	return data, nil
}

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

func completionsSince(completions []core.HabitCompletion, from time.Time) []core.HabitCompletion {
	kept := completions[:0]
	for _, c := range completions {
		if !c.Date.Before(from) {
			kept = append(kept, c)
		}
	}
	return kept
}
