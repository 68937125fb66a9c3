package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresWorkoutsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkoutsStorage(pool *pgxpool.Pool) *PostgresWorkoutsStorage {
	return &PostgresWorkoutsStorage{pool: pool}
}

const workoutColumns = `id, owner_id, title, date, exercises, total_duration, total_calories_burned, intensity, mood, notes, created_at, updated_at`

func (s *PostgresWorkoutsStorage) CreateWorkout(ctx context.Context, w *storage.Workout) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	exercises, err := encodeExercises(w.Exercises)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workouts (id, owner_id, title, date, exercises, total_duration, total_calories_burned, intensity, mood, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err = s.pool.QueryRow(ctx, query,
		w.ID, w.Owner.String(), w.Title, w.Date, exercises,
		w.TotalDuration, w.TotalCaloriesBurned, w.Intensity, w.Mood, w.Notes,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (s *PostgresWorkoutsStorage) GetWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1 AND owner_id = $2`

	w, err := scanWorkout(s.pool.QueryRow(ctx, query, id, ownerID.String()))
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

func (s *PostgresWorkoutsStorage) UpdateWorkout(ctx context.Context, w *storage.Workout) error {
	exercises, err := encodeExercises(w.Exercises)
	if err != nil {
		return err
	}

	query := `
		UPDATE workouts SET
			title = $3,
			date = $4,
			exercises = $5,
			total_duration = $6,
			total_calories_burned = $7,
			intensity = $8,
			mood = $9,
			notes = $10,
			updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING created_at, updated_at
	`
	err = s.pool.QueryRow(ctx, query,
		w.ID, w.Owner.String(), w.Title, w.Date, exercises,
		w.TotalDuration, w.TotalCaloriesBurned, w.Intensity, w.Mood, w.Notes,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	return notFound(err)
}

func (s *PostgresWorkoutsStorage) DeleteWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND owner_id = $2`, id, ownerID.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PostgresWorkoutsStorage) ListWorkouts(ctx context.Context, ownerID owner.ID, f storage.WorkoutFilter) ([]storage.Workout, int, error) {
	where := `owner_id = $1
		AND ($2::timestamptz IS NULL OR date >= $2)
		AND ($3::timestamptz IS NULL OR date <= $3)`

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE `+where, ownerID.String(), f.From, f.To).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workouts: %w", err)
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE ` + where + `
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := s.pool.Query(ctx, query, ownerID.String(), f.From, f.To, nullLimit(f.Limit), max(f.Offset, 0))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	workouts := []storage.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, 0, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, total, rows.Err()
}

func scanWorkout(row pgx.Row) (*storage.Workout, error) {
	var (
		w         storage.Workout
		ownerStr  string
		exercises []byte
	)
	err := row.Scan(
		&w.ID,
		&ownerStr,
		&w.Title,
		&w.Date,
		&exercises,
		&w.TotalDuration,
		&w.TotalCaloriesBurned,
		&w.Intensity,
		&w.Mood,
		&w.Notes,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Owner = owner.ID(ownerStr)
	if len(exercises) > 0 {
		if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
			return nil, fmt.Errorf("decode exercises for workout %s: %w", w.ID, err)
		}
	}
	return &w, nil
}

func encodeExercises(exercises []storage.Exercise) ([]byte, error) {
	if exercises == nil {
		exercises = []storage.Exercise{}
	}
	b, err := json.Marshal(exercises)
	if err != nil {
		return nil, fmt.Errorf("encode exercises: %w", err)
	}
	return b, nil
}
