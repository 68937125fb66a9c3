// Package heatmap turns a year of workouts into a calendar intensity grid
// with streak statistics.
package heatmap

import (
	"math"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

const defaultScore = 2

var intensityScores = map[string]int{
	"low":      1,
	"moderate": 2,
	"high":     3,
	"extreme":  4,
}

// IntensityScore maps an intensity label to 1..4. Unknown or empty labels
// score as moderate; known reports whether the label was recognized.
func IntensityScore(label string) (score int, known bool) {
	score, known = intensityScores[strings.ToLower(strings.TrimSpace(label))]
	if !known {
		return defaultScore, false
	}
	return score, true
}

type WorkoutSummary struct {
	Title          string  `json:"title"`
	Intensity      string  `json:"intensity"`
	IntensityScore int     `json:"intensityScore"`
	Duration       float64 `json:"duration"`
	Calories       float64 `json:"calories"`
}

type Day struct {
	Date           string           `json:"date"`
	Weekday        time.Weekday     `json:"weekday"`
	WorkoutCount   int              `json:"workoutCount"`
	IntensityLevel int              `json:"intensityLevel"`
	AvgIntensity   float64          `json:"avgIntensity"`
	MaxIntensity   int              `json:"maxIntensity"`
	TotalCalories  float64          `json:"totalCalories"`
	TotalDuration  float64          `json:"totalDuration"`
	Workouts       []WorkoutSummary `json:"workouts"`
}

// Week is one Sunday-first column. Slots outside the window are nil.
type Week [7]*Day

type Stats struct {
	TotalWorkouts     int     `json:"totalWorkouts"`
	TotalCalories     float64 `json:"totalCalories"`
	ActiveDays        int     `json:"activeDays"`
	HighIntensityDays int     `json:"highIntensityDays"`
	AverageIntensity  float64 `json:"averageIntensity"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
}

type Grid struct {
	Days  []Day  `json:"days"`
	Weeks []Week `json:"weeks"`
	Stats Stats  `json:"stats"`
}

// Window returns the first and last calendar day of the grid ending on
// today's date in loc, as midnight UTC values. The window is one year
// long: 365 days, or 366 when it spans a leap day.
func Window(today time.Time, loc *time.Location) (first, last time.Time) {
	last = storage.CalendarDay(today, loc)
	first = last.AddDate(-1, 0, 1)
	return first, last
}

// IntensityLevel classifies a day into 0..4. Rules are evaluated in order
// and the first match wins.
func IntensityLevel(count int, avg float64, max int) int {
	if count == 0 {
		return 0
	}
	if count == 1 {
		switch {
		case avg >= 4:
			return 4
		case avg >= 3:
			return 3
		case avg >= 2:
			return 2
		default:
			return 1
		}
	}

	combined := 0.7*(avg/4) + 0.3*math.Min(float64(count)/3, 1)
	switch {
	case combined >= 0.9 || max >= 4:
		return 4
	case combined >= 0.7 || max >= 3:
		return 3
	case combined >= 0.5 || avg >= 2.5:
		return 2
	default:
		return 1
	}
}

// Build produces the dense day grid, its week columns and statistics.
// Workouts are keyed by their calendar date in loc; those outside the
// window are ignored.
func Build(workouts []storage.Workout, today time.Time, loc *time.Location) *Grid {
	if loc == nil {
		loc = time.UTC
	}
	first, last := Window(today, loc)

	type bucket struct {
		summaries []WorkoutSummary
		scoreSum  int
		maxScore  int
	}
	byDate := map[string]*bucket{}
	for _, w := range workouts {
		key := dates.Key(w.Date, loc)
		b, ok := byDate[key]
		if !ok {
			b = &bucket{}
			byDate[key] = b
		}
		score, _ := IntensityScore(w.Intensity)
		b.summaries = append(b.summaries, WorkoutSummary{
			Title:          w.Title,
			Intensity:      w.Intensity,
			IntensityScore: score,
			Duration:       w.TotalDuration,
			Calories:       w.TotalCaloriesBurned,
		})
		b.scoreSum += score
		if score > b.maxScore {
			b.maxScore = score
		}
	}

	grid := &Grid{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := Day{
			Date:     d.Format(dates.Layout),
			Weekday:  d.Weekday(),
			Workouts: []WorkoutSummary{},
		}
		if b, ok := byDate[day.Date]; ok {
			day.Workouts = b.summaries
			day.WorkoutCount = len(b.summaries)
			day.AvgIntensity = float64(b.scoreSum) / float64(day.WorkoutCount)
			day.MaxIntensity = b.maxScore
			for _, s := range b.summaries {
				day.TotalCalories += s.Calories
				day.TotalDuration += s.Duration
			}
			day.IntensityLevel = IntensityLevel(day.WorkoutCount, day.AvgIntensity, day.MaxIntensity)
		}
		grid.Days = append(grid.Days, day)
	}

	grid.Weeks = GroupWeeks(grid.Days)
	grid.Stats = ComputeStats(grid.Days)
	return grid
}

// GroupWeeks partitions consecutive days into Sunday-first columns. A new
// column starts on Sunday once the current one holds a day.
func GroupWeeks(days []Day) []Week {
	weeks := []Week{}
	var current Week
	filled := false

	for i := range days {
		wd := days[i].Weekday
		if wd == time.Sunday && filled {
			weeks = append(weeks, current)
			current = Week{}
			filled = false
		}
		current[wd] = &days[i]
		filled = true
	}
	if filled {
		weeks = append(weeks, current)
	}
	return weeks
}

// ComputeStats expects days in ascending order ending today.
func ComputeStats(days []Day) Stats {
	var s Stats
	var intensitySum float64
	run := 0

	for _, d := range days {
		s.TotalWorkouts += d.WorkoutCount
		s.TotalCalories += d.TotalCalories
		if d.IntensityLevel >= 3 {
			s.HighIntensityDays++
		}
		if d.WorkoutCount > 0 {
			s.ActiveDays++
			intensitySum += d.AvgIntensity
			run++
			if run > s.LongestStreak {
				s.LongestStreak = run
			}
		} else {
			run = 0
		}
	}
	if s.ActiveDays > 0 {
		s.AverageIntensity = intensitySum / float64(s.ActiveDays)
	}

	for i := len(days) - 1; i >= 0 && days[i].WorkoutCount > 0; i-- {
		s.CurrentStreak++
	}
	return s
}
