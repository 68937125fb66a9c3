package blob

import (
	"context"
	"fmt"
	"strings"

	"github.com/fdg312/fitness-tracker/internal/config"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Open picks the report object store for mode local|s3|auto. In local
// mode (and auto without S3 settings) it returns a nil Store and reports
// keep their bytes inline in the record store.
func Open(ctx context.Context, cfg config.BlobConfig, logger Logger) (Store, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = config.BlobModeLocal
	}

	switch mode {
	case config.BlobModeLocal:
		logger.Printf("INFO blob: mode=local")
		return nil, config.BlobModeLocal, nil

	case config.BlobModeAuto:
		if !cfg.S3.IsConfigured() {
			level, code, msg := cfg.S3.Diagnostics()
			logger.Printf("%s blob.s3: code=%s %s", level, code, msg)
			logger.Printf("INFO blob: mode=local (auto, s3 not configured)")
			return nil, config.BlobModeLocal, nil
		}
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			logger.Printf("WARN blob.s3: init failed err=%q, using local", err.Error())
			return nil, config.BlobModeLocal, nil
		}
		logger.Printf("INFO blob: mode=s3 (auto) %s", cfg.S3.DiagnosticsSummary())
		return store, config.BlobModeS3, nil

	case config.BlobModeS3:
		if missing := cfg.S3.MissingRequired(); len(missing) > 0 {
			logger.Printf("ERROR blob.s3: code=s3_config_incomplete %s", cfg.S3.DiagnosticsSummary())
			return nil, "", fmt.Errorf("BLOB_MODE=s3 but missing required config: %s", strings.Join(missing, ", "))
		}
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, "", fmt.Errorf("BLOB_MODE=s3 init failed: %w", err)
		}
		logger.Printf("INFO blob: mode=s3 %s", cfg.S3.DiagnosticsSummary())
		return store, config.BlobModeS3, nil
	}

	return nil, "", fmt.Errorf("unknown BLOB_MODE %q", cfg.Mode)
}
