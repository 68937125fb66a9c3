package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReportsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresReportsStorage(pool *pgxpool.Pool) *PostgresReportsStorage {
	return &PostgresReportsStorage{pool: pool}
}

func (s *PostgresReportsStorage) CreateReport(ctx context.Context, r *storage.Report) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	query := `
		INSERT INTO reports (id, owner_id, format, period_days, from_time, to_time, object_key, size_bytes, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := s.pool.QueryRow(ctx, query,
		r.ID, r.Owner.String(), r.Format, r.PeriodDays, r.From, r.To, r.ObjectKey, r.SizeBytes, r.Data,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *PostgresReportsStorage) GetReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Report, error) {
	query := `
		SELECT id, owner_id, format, period_days, from_time, to_time, object_key, size_bytes, data, created_at
		FROM reports
		WHERE id = $1 AND owner_id = $2
	`

	var (
		r        storage.Report
		ownerStr string
	)
	err := s.pool.QueryRow(ctx, query, id, ownerID.String()).Scan(
		&r.ID, &ownerStr, &r.Format, &r.PeriodDays, &r.From, &r.To, &r.ObjectKey, &r.SizeBytes, &r.Data, &r.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	r.Owner = owner.ID(ownerStr)
	return &r, nil
}

func (s *PostgresReportsStorage) ListReports(ctx context.Context, ownerID owner.ID, limit, offset int) ([]storage.Report, error) {
	query := `
		SELECT id, owner_id, format, period_days, from_time, to_time, object_key, size_bytes, created_at
		FROM reports
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, ownerID.String(), nullLimit(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []storage.Report{}
	for rows.Next() {
		var (
			r        storage.Report
			ownerStr string
		)
		if err := rows.Scan(&r.ID, &ownerStr, &r.Format, &r.PeriodDays, &r.From, &r.To, &r.ObjectKey, &r.SizeBytes, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Owner = owner.ID(ownerStr)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *PostgresReportsStorage) DeleteReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1 AND owner_id = $2`, id, ownerID.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
