// Package seed generates a month of sample workouts and health metrics.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/fdg312/fitness-tracker/internal/metrics"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/workouts"
)

const (
	DefaultDays     = 30
	DefaultWorkouts = 15
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

// Templates are the sample sessions workouts are drawn from.
var Templates = []workouts.WorkoutRequest{
	{
		Title: "Morning Cardio Session",
		Exercises: []storage.Exercise{
			{Name: "Running", Category: "cardio", Duration: f(30), Distance: f(5), CaloriesBurned: f(300), Notes: "Good pace, felt energetic"},
			{Name: "Cool down walk", Category: "cardio", Duration: f(10), Distance: f(1), CaloriesBurned: f(50)},
		},
		Intensity: "moderate",
		Mood:      "good",
		Notes:     "Great start to the day!",
	},
	{
		Title: "Strength Training - Upper Body",
		Exercises: []storage.Exercise{
			{Name: "Bench Press", Category: "strength", Duration: f(20), Sets: n(3), Reps: n(10), Weight: f(70), CaloriesBurned: f(120)},
			{Name: "Pull-ups", Category: "strength", Duration: f(15), Sets: n(3), Reps: n(8), CaloriesBurned: f(80)},
			{Name: "Shoulder Press", Category: "strength", Duration: f(15), Sets: n(3), Reps: n(12), Weight: f(25), CaloriesBurned: f(70)},
		},
		Intensity: "high",
		Mood:      "excellent",
		Notes:     "Personal best on bench press!",
	},
	{
		Title: "Yoga Flow",
		Exercises: []storage.Exercise{
			{Name: "Vinyasa Flow", Category: "flexibility", Duration: f(45), CaloriesBurned: f(180), Notes: "Focused on breathing and flexibility"},
		},
		Intensity: "low",
		Mood:      "good",
		Notes:     "Very relaxing session",
	},
	{
		Title: "HIIT Workout",
		Exercises: []storage.Exercise{
			{Name: "Burpees", Category: "cardio", Duration: f(10), Sets: n(4), Reps: n(10), CaloriesBurned: f(120)},
			{Name: "Mountain Climbers", Category: "cardio", Duration: f(10), Sets: n(4), Reps: n(20), CaloriesBurned: f(100)},
			{Name: "Jump Squats", Category: "strength", Duration: f(10), Sets: n(4), Reps: n(15), CaloriesBurned: f(90)},
		},
		Intensity: "extreme",
		Mood:      "excellent",
		Notes:     "Intense but rewarding!",
	},
}

// Generator produces sample requests for the days before now.
type Generator struct {
	rng *rand.Rand
	now time.Time
	loc *time.Location
}

func NewGenerator(seed uint64, now time.Time, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now: now, loc: loc}
}

func (g *Generator) start(days int) time.Time {
	return g.now.In(g.loc).AddDate(0, 0, -days)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Metrics returns one entry per day, oldest first. Weight drifts by at
// most 0.25 kg a day.
func (g *Generator) Metrics(days int) []metrics.UpsertRequest {
	start := g.start(days)
	weight := 75 + g.rng.Float64()*10
	out := make([]metrics.UpsertRequest, 0, days)
	for i := 0; i < days; i++ {
		weight += (g.rng.Float64() - 0.5) * 0.5
		req := metrics.UpsertRequest{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			Weight:      f(round1(weight)),
			SleepHours:  f(round1(6 + g.rng.Float64()*3)),
			StepsCount:  n(5000 + g.rng.IntN(10000)),
			WaterIntake: f(round1(1.5 + g.rng.Float64()*2)),
		}
		if g.rng.Float64() > 0.7 {
			req.BodyFatPercentage = f(round1(15 + g.rng.Float64()*10))
			req.RestingHeartRate = n(60 + g.rng.IntN(20))
		}
		out = append(out, req)
	}
	return out
}

// Workouts spreads count sessions evenly over days, each a copy of a
// random template with varied totals.
func (g *Generator) Workouts(count, days int) []workouts.WorkoutRequest {
	start := g.start(days)
	out := make([]workouts.WorkoutRequest, 0, count)
	for i := 0; i < count; i++ {
		req := Templates[g.rng.IntN(len(Templates))]
		req.Exercises = append([]storage.Exercise(nil), req.Exercises...)
		req.Date = start.AddDate(0, 0, i*days/count).Format(time.RFC3339)
		req.TotalCaloriesBurned = f(float64(200 + g.rng.IntN(300)))
		req.TotalDuration = f(float64(20 + g.rng.IntN(60)))
		out = append(out, req)
	}
	return out
}

type Result struct {
	Metrics  int
	Workouts int
}

// Run writes the generated data through the services so every record is
// validated the same way API writes are.
func (g *Generator) Run(ctx context.Context, ownerID owner.ID, ws *workouts.Service, ms *metrics.Service, days, count int) (Result, error) {
	var res Result
	for _, req := range g.Metrics(days) {
		req := req
		if _, err := ms.Upsert(ctx, ownerID, &req); err != nil {
			return res, fmt.Errorf("seed metric %s: %w", req.Date, err)
		}
		res.Metrics++
	}
	for _, req := range g.Workouts(count, days) {
		req := req
		if _, err := ws.Create(ctx, ownerID, &req); err != nil {
			return res, fmt.Errorf("seed workout %q: %w", req.Title, err)
		}
		res.Workouts++
	}
	return res, nil
}

// Reset deletes every workout the owner has. Health metrics are upserted
// per day and need no reset.
func Reset(ctx context.Context, store storage.WorkoutsStorage, ownerID owner.ID) (int, error) {
	rows, _, err := store.ListWorkouts(ctx, ownerID, storage.WorkoutFilter{})
	if err != nil {
		return 0, err
	}
	for _, w := range rows {
		if err := store.DeleteWorkout(ctx, ownerID, w.ID); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}
