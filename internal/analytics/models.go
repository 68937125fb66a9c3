package analytics

import "github.com/fdg312/fitness-tracker/internal/storage"

type Summary struct {
	TotalWorkouts         int     `json:"totalWorkouts" yaml:"totalWorkouts"`
	TotalCalories         float64 `json:"totalCalories" yaml:"totalCalories"`
	TotalDuration         float64 `json:"totalDuration" yaml:"totalDuration"`
	AvgCaloriesPerWorkout float64 `json:"avgCaloriesPerWorkout" yaml:"avgCaloriesPerWorkout"`
	AvgDuration           float64 `json:"avgDuration" yaml:"avgDuration"`
}

type CategoryBreakdown struct {
	Category      string  `json:"category" yaml:"category"`
	Count         int     `json:"count" yaml:"count"`
	TotalCalories float64 `json:"totalCalories" yaml:"totalCalories"`
}

// TrendPoint is one bucket of a daily or weekly series. Daily points
// carry Date, weekly points carry Year and Week.
type TrendPoint struct {
	Date     string  `json:"date,omitempty" yaml:"date,omitempty"`
	Year     int     `json:"year,omitempty" yaml:"year,omitempty"`
	Week     int     `json:"week,omitempty" yaml:"week,omitempty"`
	Workouts int     `json:"workouts" yaml:"workouts"`
	Calories float64 `json:"calories" yaml:"calories"`
	Duration float64 `json:"duration" yaml:"duration"`
}

type WorkoutAnalytics struct {
	Summary           Summary             `json:"summary" yaml:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	WeeklyTrend       []TrendPoint        `json:"weeklyTrend" yaml:"weeklyTrend"`
	DailyTrend        []TrendPoint        `json:"dailyTrend" yaml:"dailyTrend"`
}

type HealthPoint struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

type HealthTrends struct {
	WeightTrend  []HealthPoint `json:"weightTrend" yaml:"weightTrend"`
	SleepTrend   []HealthPoint `json:"sleepTrend" yaml:"sleepTrend"`
	StepsTrend   []HealthPoint `json:"stepsTrend" yaml:"stepsTrend"`
	TotalRecords int           `json:"totalRecords" yaml:"totalRecords"`
}

type TodaySnapshot struct {
	Workouts int     `json:"workouts" yaml:"workouts"`
	Calories float64 `json:"calories" yaml:"calories"`
}

type WeekSnapshot struct {
	Workouts int `json:"workouts" yaml:"workouts"`
}

// Dashboard.LatestMetrics is a metrics.HealthMetricDTO, or an empty
// object when the owner has no metrics.
type Dashboard struct {
	Today         TodaySnapshot `json:"today" yaml:"today"`
	ThisWeek      WeekSnapshot  `json:"thisWeek" yaml:"thisWeek"`
	LatestMetrics interface{}   `json:"latestMetrics" yaml:"latestMetrics"`
}

func summaryFrom(t storage.Totals) Summary {
	s := Summary{
		TotalWorkouts: t.Workouts,
		TotalCalories: t.Calories,
		TotalDuration: t.Duration,
	}
	if t.Workouts > 0 {
		s.AvgCaloriesPerWorkout = t.Calories / float64(t.Workouts)
		s.AvgDuration = t.Duration / float64(t.Workouts)
	}
	return s
}

func dailyPoints(buckets []storage.DayBucket) []TrendPoint {
	out := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendPoint{Date: b.Date, Workouts: b.Workouts, Calories: b.Calories, Duration: b.Duration})
	}
	return out
}

func weeklyPoints(buckets []storage.WeekBucket) []TrendPoint {
	out := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendPoint{Year: b.Year, Week: b.Week, Workouts: b.Workouts, Calories: b.Calories, Duration: b.Duration})
	}
	return out
}

func categoryRows(totals []storage.CategoryTotal) []CategoryBreakdown {
	out := make([]CategoryBreakdown, 0, len(totals))
	for _, c := range totals {
		out = append(out, CategoryBreakdown{Category: c.Category, Count: c.Count, TotalCalories: c.Calories})
	}
	return out
}
