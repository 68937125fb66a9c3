package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHealthMetricsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresHealthMetricsStorage(pool *pgxpool.Pool) *PostgresHealthMetricsStorage {
	return &PostgresHealthMetricsStorage{pool: pool}
}

const healthMetricColumns = `id, owner_id, date, weight, body_fat_percentage, muscle_mass, resting_heart_rate,
	bp_systolic, bp_diastolic, sleep_hours, water_intake, steps_count, notes, created_at, updated_at`

// UpsertHealthMetric relies on UNIQUE (owner_id, date).
func (s *PostgresHealthMetricsStorage) UpsertHealthMetric(ctx context.Context, m *storage.HealthMetric) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	var systolic, diastolic *int
	if m.BloodPressure != nil {
		systolic, diastolic = m.BloodPressure.Systolic, m.BloodPressure.Diastolic
	}

	query := `
		INSERT INTO health_metrics (id, owner_id, date, weight, body_fat_percentage, muscle_mass, resting_heart_rate,
			bp_systolic, bp_diastolic, sleep_hours, water_intake, steps_count, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (owner_id, date)
		DO UPDATE SET
			weight = EXCLUDED.weight,
			body_fat_percentage = EXCLUDED.body_fat_percentage,
			muscle_mass = EXCLUDED.muscle_mass,
			resting_heart_rate = EXCLUDED.resting_heart_rate,
			bp_systolic = EXCLUDED.bp_systolic,
			bp_diastolic = EXCLUDED.bp_diastolic,
			sleep_hours = EXCLUDED.sleep_hours,
			water_intake = EXCLUDED.water_intake,
			steps_count = EXCLUDED.steps_count,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := s.pool.QueryRow(ctx, query,
		m.ID, m.Owner.String(), m.Date, m.Weight, m.BodyFatPercentage, m.MuscleMass, m.RestingHeartRate,
		systolic, diastolic, m.SleepHours, m.WaterIntake, m.StepsCount, m.Notes,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert health metric: %w", err)
	}
	return nil
}

func (s *PostgresHealthMetricsStorage) ListHealthMetrics(ctx context.Context, ownerID owner.ID, f storage.MetricFilter) ([]storage.HealthMetric, error) {
	query := `SELECT ` + healthMetricColumns + `
		FROM health_metrics
		WHERE owner_id = $1
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC
		LIMIT $4`

	rows, err := s.pool.Query(ctx, query, ownerID.String(), f.From, f.To, nullLimit(f.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	defer rows.Close()

	metrics := []storage.HealthMetric{}
	for rows.Next() {
		m, err := scanHealthMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

func (s *PostgresHealthMetricsStorage) LatestHealthMetric(ctx context.Context, ownerID owner.ID) (*storage.HealthMetric, error) {
	query := `SELECT ` + healthMetricColumns + ` FROM health_metrics WHERE owner_id = $1 ORDER BY date DESC LIMIT 1`

	m, err := scanHealthMetric(s.pool.QueryRow(ctx, query, ownerID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func scanHealthMetric(row pgx.Row) (*storage.HealthMetric, error) {
	var (
		m                   storage.HealthMetric
		ownerStr            string
		systolic, diastolic *int
	)
	err := row.Scan(
		&m.ID,
		&ownerStr,
		&m.Date,
		&m.Weight,
		&m.BodyFatPercentage,
		&m.MuscleMass,
		&m.RestingHeartRate,
		&systolic,
		&diastolic,
		&m.SleepHours,
		&m.WaterIntake,
		&m.StepsCount,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Owner = owner.ID(ownerStr)
	if systolic != nil || diastolic != nil {
		m.BloodPressure = &storage.BloodPressure{Systolic: systolic, Diastolic: diastolic}
	}
	return &m, nil
}
