package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/dbmigrate"
	"github.com/fdg312/fitness-tracker/internal/httpserver"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)

	if cfg.RunMigrationsOnStartup {
		target, err := dbmigrate.SelectTarget(cfg, true)
		if err != nil {
			log.Fatalf("FATAL startup migrations: %v", err)
		}
		log.Printf("startup migrations: command=up using=%s", target.Source)
		if err := dbmigrate.Run("up", target.URL); err != nil {
			log.Fatalf("FATAL startup migrations failed: %v", err)
		}
		log.Printf("startup migrations: completed")
	}

	validateProductionConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpserver.New(cfg)
	defer server.Close()

	if err := server.Start(ctx); err != nil {
		log.Printf("ERROR http: %v", err)
	}
}

// printStartupBanner logs the resolved configuration once. Secrets are
// only reported as set or not set.
func printStartupBanner(cfg *config.Config) {
	log.Println("========== Fitness Tracker API ==========")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)
	log.Printf("  timezone         = %s", cfg.Timezone)

	log.Println("---- storage ----")
	log.Printf("  backend          = %s", cfg.Backend())
	log.Printf("  runtime_url      = %s", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled))
	log.Printf("  direct           = %s", setOrNot(cfg.DatabaseURLDirect))
	log.Printf("  mongodb_uri      = %s", setOrNot(cfg.MongoURI))
	if cfg.MongoURI != "" {
		log.Printf("  mongodb_database = %s", cfg.MongoDatabase)
	}
	log.Printf("  migrations_on_startup = %t", cfg.RunMigrationsOnStartup)

	log.Println("---- auth ----")
	log.Printf("  auth_mode        = %s", cfg.AuthMode)
	log.Printf("  auth_required    = %t", cfg.AuthRequired)
	log.Printf("  default_owner    = %s", nonEmptyOrDash(cfg.DefaultOwnerID))
	log.Printf("  jwt_secret       = %s", secretStatus(cfg.JWTSecret, "change_me"))

	log.Println("---- analytics ----")
	log.Printf("  default_period   = %d", cfg.AnalyticsDefaultPeriodDays)
	log.Printf("  max_period       = %d", cfg.AnalyticsMaxPeriodDays)
	log.Printf("  daily_trend_max  = %d", cfg.DailyTrendMaxDays)
	log.Printf("  heatmap_fetch    = %d", cfg.HeatmapFetchLimit)

	log.Println("---- blob ----")
	log.Printf("  blob_mode        = %s", cfg.Blob.Mode)
	if cfg.Blob.Mode != config.BlobModeLocal {
		log.Printf("  s3: %s", cfg.Blob.S3.DiagnosticsSummary())
	}

	log.Println("=========================================")
}

// validateProductionConfig performs fatal checks that only matter outside
// local runs.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatalf("FATAL blob: BLOB_MODE=s3 but S3 config is incomplete, missing: %s", strings.Join(missing, ", "))
		}
	}

	if isProd && cfg.AuthRequired && cfg.JWTSecret == "change_me" {
		log.Fatalf("FATAL auth: JWT_SECRET must not be 'change_me' in %s with AUTH_REQUIRED=1", cfg.Env)
	}

	if isProd && cfg.Backend() == config.BackendMemory {
		log.Fatalf("FATAL storage: no DATABASE_URL or MONGODB_URI configured in %s", cfg.Env)
	}
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func nonEmptyOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func secretStatus(v, insecureDefault string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "not set"
	}
	if v == insecureDefault {
		return fmt.Sprintf("set (DEFAULT, insecure '%s')", insecureDefault)
	}
	return "set (custom)"
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}
