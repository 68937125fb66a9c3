package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/metrics"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)

type Options struct {
	Location          *time.Location
	DefaultPeriodDays int
	MaxPeriodDays     int
	DailyTrendMaxDays int
}

// Service is the analytics aggregator. It reads fresh data on every call
// and holds no state of its own.
type Service struct {
	workouts storage.WorkoutsStorage
	metrics  storage.HealthMetricsStorage
	opts     Options
	now      func() time.Time
}

func NewService(workouts storage.WorkoutsStorage, healthMetrics storage.HealthMetricsStorage, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultPeriodDays <= 0 {
		opts.DefaultPeriodDays = 30
	}
	if opts.MaxPeriodDays <= 0 {
		opts.MaxPeriodDays = 3660
	}
	if opts.DailyTrendMaxDays <= 0 {
		opts.DailyTrendMaxDays = 30
	}
	return &Service{workouts: workouts, metrics: healthMetrics, opts: opts, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Options() Options { return s.opts }

// windowStart is the rolling instant that opens a window of days.
func (s *Service) windowStart(days int) time.Time {
	return s.now().Add(-time.Duration(days) * 24 * time.Hour)
}

func (s *Service) check(ownerID owner.ID, days int) error {
	if ownerID.IsZero() {
		return ErrUnauthorized
	}
	if days < 0 || days > s.opts.MaxPeriodDays {
		return fmt.Errorf("%w: period must be between 0 and %d", ErrInvalidRequest, s.opts.MaxPeriodDays)
	}
	return nil
}

// aggregate groups the owner's workouts in the window, natively when the
// store supports it.
func (s *Service) aggregate(ctx context.Context, ownerID owner.ID, days int) (*storage.WorkoutAggregates, error) {
	if err := s.check(ownerID, days); err != nil {
		return nil, err
	}
	from := s.windowStart(days)

	if agg, ok := s.workouts.(storage.WorkoutAggregator); ok {
		out, err := agg.AggregateWorkouts(ctx, ownerID, from, s.opts.Location)
		if err != nil {
			return nil, fmt.Errorf("aggregate workouts: %w", err)
		}
		sortCategories(out.Categories)
		return out, nil
	}

	rows, _, err := s.workouts.ListWorkouts(ctx, ownerID, storage.WorkoutFilter{From: &from})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return Aggregate(rows, s.opts.Location), nil
}

// ComputeWorkoutSummary returns totals and means over the window. An empty
// window yields the zero summary.
func (s *Service) ComputeWorkoutSummary(ctx context.Context, ownerID owner.ID, days int) (*Summary, error) {
	agg, err := s.aggregate(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	summary := summaryFrom(agg.Totals)
	return &summary, nil
}

func (s *Service) ComputeCategoryBreakdown(ctx context.Context, ownerID owner.ID, days int) ([]CategoryBreakdown, error) {
	agg, err := s.aggregate(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	return categoryRows(agg.Categories), nil
}

// ComputeDailyTrend returns one point per local calendar day that has at
// least one workout, ascending.
func (s *Service) ComputeDailyTrend(ctx context.Context, ownerID owner.ID, days int) ([]TrendPoint, error) {
	agg, err := s.aggregate(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	return dailyPoints(agg.Daily), nil
}

func (s *Service) ComputeWeeklyTrend(ctx context.Context, ownerID owner.ID, days int) ([]TrendPoint, error) {
	agg, err := s.aggregate(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	return weeklyPoints(agg.Weekly), nil
}

// WorkoutAnalytics builds every workout series from a single aggregation.
// Past DailyTrendMaxDays the daily series is replaced by the weekly one.
func (s *Service) WorkoutAnalytics(ctx context.Context, ownerID owner.ID, days int) (*WorkoutAnalytics, error) {
	agg, err := s.aggregate(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	out := &WorkoutAnalytics{
		Summary:           summaryFrom(agg.Totals),
		CategoryBreakdown: categoryRows(agg.Categories),
		WeeklyTrend:       weeklyPoints(agg.Weekly),
		DailyTrend:        dailyPoints(agg.Daily),
	}
	if days > s.opts.DailyTrendMaxDays {
		out.DailyTrend = out.WeeklyTrend
	}
	return out, nil
}

// ComputeHealthTrends emits one series per field, each holding only the
// records where that field is set, ascending by date.
func (s *Service) ComputeHealthTrends(ctx context.Context, ownerID owner.ID, days int) (*HealthTrends, error) {
	if err := s.check(ownerID, days); err != nil {
		return nil, err
	}
	from := storage.CalendarDay(s.windowStart(days), s.opts.Location)

	rows, err := s.metrics.ListHealthMetrics(ctx, ownerID, storage.MetricFilter{From: &from})
	if err != nil {
		return nil, fmt.Errorf("list health metrics: %w", err)
	}

	out := &HealthTrends{
		WeightTrend:  []HealthPoint{},
		SleepTrend:   []HealthPoint{},
		StepsTrend:   []HealthPoint{},
		TotalRecords: len(rows),
	}
	for i := len(rows) - 1; i >= 0; i-- {
		m := rows[i]
		day := m.Date.UTC().Format(dates.Layout)
		if m.Weight != nil {
			out.WeightTrend = append(out.WeightTrend, HealthPoint{Date: day, Value: *m.Weight})
		}
		if m.SleepHours != nil {
			out.SleepTrend = append(out.SleepTrend, HealthPoint{Date: day, Value: *m.SleepHours})
		}
		if m.StepsCount != nil {
			out.StepsTrend = append(out.StepsTrend, HealthPoint{Date: day, Value: float64(*m.StepsCount)})
		}
	}
	return out, nil
}

// ComputeDashboardSnapshot reports today's workouts, the trailing seven
// days' count and the latest health metric.
func (s *Service) ComputeDashboardSnapshot(ctx context.Context, ownerID owner.ID) (*Dashboard, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	now := s.now()
	loc := s.opts.Location

	start, end := dates.StartOfDay(now, loc), dates.EndOfDay(now, loc)
	today, _, err := s.workouts.ListWorkouts(ctx, ownerID, storage.WorkoutFilter{From: &start, To: &end})
	if err != nil {
		return nil, fmt.Errorf("list today's workouts: %w", err)
	}

	weekStart := now.Add(-7 * 24 * time.Hour)
	_, weekCount, err := s.workouts.ListWorkouts(ctx, ownerID, storage.WorkoutFilter{From: &weekStart, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("count week workouts: %w", err)
	}

	latest, err := s.metrics.LatestHealthMetric(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("latest health metric: %w", err)
	}

	out := &Dashboard{
		ThisWeek:      WeekSnapshot{Workouts: weekCount},
		LatestMetrics: struct{}{},
	}
	for _, w := range today {
		out.Today.Workouts++
		out.Today.Calories += w.TotalCaloriesBurned
	}
	if latest != nil {
		out.LatestMetrics = metrics.ToDTO(latest)
	}
	return out, nil
}
