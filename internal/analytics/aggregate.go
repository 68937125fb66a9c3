package analytics

import (
	"sort"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

type weekKey struct{ year, week int }

// Aggregate groups workouts in process. It produces the same buckets as
// the native storage.WorkoutAggregator implementations: daily keys are
// local calendar dates in loc, weekly keys are ISO weeks, and category
// calories come from the exercises' own caloriesBurned.
func Aggregate(workouts []storage.Workout, loc *time.Location) *storage.WorkoutAggregates {
	if loc == nil {
		loc = time.UTC
	}
	agg := &storage.WorkoutAggregates{
		Categories: []storage.CategoryTotal{},
		Daily:      []storage.DayBucket{},
		Weekly:     []storage.WeekBucket{},
	}

	days := map[string]*storage.DayBucket{}
	weeks := map[weekKey]*storage.WeekBucket{}
	categories := map[string]*storage.CategoryTotal{}

	for _, w := range workouts {
		addWorkout(&agg.Totals, w)

		key := dates.Key(w.Date, loc)
		d, ok := days[key]
		if !ok {
			d = &storage.DayBucket{Date: key}
			days[key] = d
		}
		addWorkout(&d.Totals, w)

		y, wk := w.Date.In(loc).ISOWeek()
		b, ok := weeks[weekKey{y, wk}]
		if !ok {
			b = &storage.WeekBucket{Year: y, Week: wk}
			weeks[weekKey{y, wk}] = b
		}
		addWorkout(&b.Totals, w)

		for _, e := range w.Exercises {
			c, ok := categories[e.Category]
			if !ok {
				c = &storage.CategoryTotal{Category: e.Category}
				categories[e.Category] = c
			}
			c.Count++
			if e.CaloriesBurned != nil {
				c.Calories += *e.CaloriesBurned
			}
		}
	}

	for _, d := range days {
		agg.Daily = append(agg.Daily, *d)
	}
	sort.Slice(agg.Daily, func(i, j int) bool { return agg.Daily[i].Date < agg.Daily[j].Date })

	for _, b := range weeks {
		agg.Weekly = append(agg.Weekly, *b)
	}
	sort.Slice(agg.Weekly, func(i, j int) bool {
		if agg.Weekly[i].Year != agg.Weekly[j].Year {
			return agg.Weekly[i].Year < agg.Weekly[j].Year
		}
		return agg.Weekly[i].Week < agg.Weekly[j].Week
	})

	for _, c := range categories {
		agg.Categories = append(agg.Categories, *c)
	}
	sortCategories(agg.Categories)
	return agg
}

func addWorkout(t *storage.Totals, w storage.Workout) {
	t.Workouts++
	t.Calories += w.TotalCaloriesBurned
	t.Duration += w.TotalDuration
}

func sortCategories(c []storage.CategoryTotal) {
	sort.Slice(c, func(i, j int) bool { return c[i].Category < c[j].Category })
}
