// Package backend opens the record store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/storage/memory"
	"github.com/fdg312/fitness-tracker/internal/storage/mongodb"
	"github.com/fdg312/fitness-tracker/internal/storage/postgres"
)

const connectTimeout = 10 * time.Second

// Open connects to cfg.Backend().
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Backend() {
	case config.BackendPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return s, nil
	case config.BackendMongo:
		s, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongodb: %w", err)
		}
		return s, nil
	default:
		return memory.New(), nil
	}
}

type Logger interface {
	Printf(format string, v ...any)
}

// OpenOrMemory falls back to the in-memory store when the configured
// backend is unreachable.
func OpenOrMemory(ctx context.Context, cfg *config.Config, logger Logger) storage.Store {
	s, err := Open(ctx, cfg)
	if err != nil {
		logger.Printf("WARN storage: backend=%s unavailable err=%v, using memory", cfg.Backend(), err)
		return memory.New()
	}
	logger.Printf("INFO storage: backend=%s", s.Name())
	return s
}
