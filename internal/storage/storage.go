package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist or belongs to
// another owner.
var ErrNotFound = errors.New("not found")

// Exercise is one entry of a workout's ordered exercise list.
type Exercise struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Duration       *float64 `json:"duration,omitempty"`
	Sets           *int     `json:"sets,omitempty"`
	Reps           *int     `json:"reps,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	CaloriesBurned *float64 `json:"caloriesBurned,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type Workout struct {
	ID                  uuid.UUID
	Owner               owner.ID
	Title               string
	Date                time.Time
	Exercises           []Exercise
	TotalDuration       float64
	TotalCaloriesBurned float64
	Intensity           string
	Mood                string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type BloodPressure struct {
	Systolic  *int `json:"systolic,omitempty"`
	Diastolic *int `json:"diastolic,omitempty"`
}

// HealthMetric is one per owner and calendar day. Date holds midnight UTC
// of that day.
type HealthMetric struct {
	ID                uuid.UUID
	Owner             owner.ID
	Date              time.Time
	Weight            *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	RestingHeartRate  *int
	BloodPressure     *BloodPressure
	SleepHours        *float64
	WaterIntake       *float64
	StepsCount        *int
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Report is an exported analytics file. Data is kept inline when no
// object store is configured, otherwise ObjectKey points into the bucket.
type Report struct {
	ID         uuid.UUID
	Owner      owner.ID
	Format     string
	PeriodDays int
	From       time.Time
	To         time.Time
	ObjectKey  string
	SizeBytes  int64
	Data       []byte
	CreatedAt  time.Time
}

// WorkoutFilter bounds are inclusive. Limit 0 means no limit.
type WorkoutFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type MetricFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type WorkoutsStorage interface {
	CreateWorkout(ctx context.Context, w *Workout) error
	GetWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*Workout, error)
	UpdateWorkout(ctx context.Context, w *Workout) error
	DeleteWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) error
	// ListWorkouts returns rows sorted by date descending plus the total
	// number of rows matching the filter before paging.
	ListWorkouts(ctx context.Context, ownerID owner.ID, f WorkoutFilter) ([]Workout, int, error)
}

type HealthMetricsStorage interface {
	// UpsertHealthMetric writes m for (m.Owner, m.Date). An existing row
	// for that day keeps its ID and CreatedAt; m is updated in place.
	UpsertHealthMetric(ctx context.Context, m *HealthMetric) error
	ListHealthMetrics(ctx context.Context, ownerID owner.ID, f MetricFilter) ([]HealthMetric, error)
	// LatestHealthMetric returns nil, nil when the owner has no metrics.
	LatestHealthMetric(ctx context.Context, ownerID owner.ID) (*HealthMetric, error)
}

type ReportsStorage interface {
	CreateReport(ctx context.Context, r *Report) error
	GetReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context, ownerID owner.ID, limit, offset int) ([]Report, error)
	DeleteReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) error
}

// Store is implemented by every backend.
type Store interface {
	WorkoutsStorage
	HealthMetricsStorage
	ReportsStorage
	Name() string
	Close() error
}

// Totals is a count with calorie and duration sums.
type Totals struct {
	Workouts int
	Calories float64
	Duration float64
}

type CategoryTotal struct {
	Category string
	Count    int
	Calories float64
}

// DayBucket is keyed by the local calendar date, formatted 2006-01-02.
type DayBucket struct {
	Date string
	Totals
}

// WeekBucket is keyed by ISO year and ISO week.
type WeekBucket struct {
	Year int
	Week int
	Totals
}

// WorkoutAggregates is the grouped view of an owner's workouts since a
// point in time. Daily and Weekly are sorted ascending.
type WorkoutAggregates struct {
	Totals     Totals
	Categories []CategoryTotal
	Daily      []DayBucket
	Weekly     []WeekBucket
}

// WorkoutAggregator is implemented by backends that can group natively.
// Buckets use loc for calendar boundaries.
type WorkoutAggregator interface {
	AggregateWorkouts(ctx context.Context, ownerID owner.ID, from time.Time, loc *time.Location) (*WorkoutAggregates, error)
}

// CalendarDay maps t to midnight UTC of its calendar date in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
