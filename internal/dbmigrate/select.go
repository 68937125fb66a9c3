package dbmigrate

import (
	"fmt"

	"github.com/fdg312/fitness-tracker/internal/config"
)

// Target is the connection chosen for DDL.
type Target struct {
	URL     string
	Source  string
	Warning string
}

// SelectTarget picks the URL used for migrations.
// Priority: DIRECT > DATABASE_URL > POOLED (with warning). With
// requireDirect only DATABASE_URL_DIRECT is accepted.
func SelectTarget(cfg *config.Config, requireDirect bool) (Target, error) {
	if cfg.DatabaseURLDirect != "" {
		return Target{URL: cfg.DatabaseURLDirect, Source: "DATABASE_URL_DIRECT"}, nil
	}
	if requireDirect {
		return Target{}, fmt.Errorf("DATABASE_URL_DIRECT is required for DDL/migrations")
	}
	if cfg.DatabaseURLRaw != "" {
		return Target{URL: cfg.DatabaseURLRaw, Source: "DATABASE_URL"}, nil
	}
	if cfg.DatabaseURLPooled != "" {
		return Target{
			URL:     cfg.DatabaseURLPooled,
			Source:  "DATABASE_URL_POOLED",
			Warning: "using pooled connection for DDL is not recommended; set DATABASE_URL_DIRECT",
		}, nil
	}
	return Target{}, fmt.Errorf("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")
}
