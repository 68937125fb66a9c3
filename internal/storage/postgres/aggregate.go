package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

// AggregateWorkouts groups in SQL. Calendar parts are taken from
// date AT TIME ZONE loc so buckets match the in-process grouping.
func (s *PostgresWorkoutsStorage) AggregateWorkouts(ctx context.Context, ownerID owner.ID, from time.Time, loc *time.Location) (*storage.WorkoutAggregates, error) {
	tz := loc.String()
	if loc == time.Local {
		tz = "UTC"
	}
	agg := &storage.WorkoutAggregates{
		Categories: []storage.CategoryTotal{},
		Daily:      []storage.DayBucket{},
		Weekly:     []storage.WeekBucket{},
	}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_calories_burned), 0), COALESCE(SUM(total_duration), 0)
		FROM workouts
		WHERE owner_id = $1 AND date >= $2
	`, ownerID.String(), from).Scan(&agg.Totals.Workouts, &agg.Totals.Calories, &agg.Totals.Duration)
	if err != nil {
		return nil, fmt.Errorf("aggregate totals: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT e->>'category', COUNT(*), COALESCE(SUM((e->>'caloriesBurned')::double precision), 0)
		FROM workouts w, jsonb_array_elements(w.exercises) AS e
		WHERE w.owner_id = $1 AND w.date >= $2
		GROUP BY 1
	`, ownerID.String(), from)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	for rows.Next() {
		var c storage.CategoryTotal
		var category *string
		if err := rows.Scan(&category, &c.Count, &c.Calories); err != nil {
			rows.Close()
			return nil, err
		}
		if category != nil {
			c.Category = *category
		}
		agg.Categories = append(agg.Categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT to_char(date AT TIME ZONE $3, 'YYYY-MM-DD') AS day,
			COUNT(*), COALESCE(SUM(total_calories_burned), 0), COALESCE(SUM(total_duration), 0)
		FROM workouts
		WHERE owner_id = $1 AND date >= $2
		GROUP BY day
		ORDER BY day ASC
	`, ownerID.String(), from, tz)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily: %w", err)
	}
	for rows.Next() {
		var b storage.DayBucket
		if err := rows.Scan(&b.Date, &b.Workouts, &b.Calories, &b.Duration); err != nil {
			rows.Close()
			return nil, err
		}
		agg.Daily = append(agg.Daily, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT EXTRACT(ISOYEAR FROM date AT TIME ZONE $3)::int AS y,
			EXTRACT(WEEK FROM date AT TIME ZONE $3)::int AS w,
			COUNT(*), COALESCE(SUM(total_calories_burned), 0), COALESCE(SUM(total_duration), 0)
		FROM workouts
		WHERE owner_id = $1 AND date >= $2
		GROUP BY y, w
		ORDER BY y ASC, w ASC
	`, ownerID.String(), from, tz)
	if err != nil {
		return nil, fmt.Errorf("aggregate weekly: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b storage.WeekBucket
		if err := rows.Scan(&b.Year, &b.Week, &b.Workouts, &b.Calories, &b.Duration); err != nil {
			return nil, err
		}
		agg.Weekly = append(agg.Weekly, b)
	}
	return agg, rows.Err()
}
