package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the pgx-backed storage.Store. The schema is owned by
// the goose migrations in internal/dbmigrate.
type PostgresStorage struct {
	pool *pgxpool.Pool
	*PostgresWorkoutsStorage
	*PostgresHealthMetricsStorage
	*PostgresReportsStorage
}

var (
	_ storage.Store             = (*PostgresStorage)(nil)
	_ storage.WorkoutAggregator = (*PostgresStorage)(nil)
)

func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStorage{
		pool:                         pool,
		PostgresWorkoutsStorage:      NewPostgresWorkoutsStorage(pool),
		PostgresHealthMetricsStorage: NewPostgresHealthMetricsStorage(pool),
		PostgresReportsStorage:       NewPostgresReportsStorage(pool),
	}, nil
}

func (p *PostgresStorage) Name() string { return "postgres" }

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// notFound maps pgx.ErrNoRows to storage.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// nullLimit turns "no limit" into SQL NULL so LIMIT $n is ignored.
func nullLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
