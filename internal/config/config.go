package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
)

const (
	AuthModeNone = "none"
	AuthModeDev  = "dev"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config holds the application configuration.
type Config struct {
	Env      string // local | staging | production
	Port     int
	LogLevel string

	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	MongoURI      string
	MongoDatabase string

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	RateLimitRPS   int
	RateLimitBurst int

	Blob                 BlobConfig
	ReportsMaxPeriodDays int

	AuthMode       string // none | dev
	AuthRequired   bool
	JWTSecret      string
	JWTIssuer      string
	JWTTTLMinutes  int
	DefaultOwnerID string

	Timezone string
	Location *time.Location

	AnalyticsDefaultPeriodDays int
	AnalyticsMaxPeriodDays     int
	DailyTrendMaxDays          int
	HeatmapFetchLimit          int

	RunMigrationsOnStartup bool
}

func Load() *Config {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	port := envInt("PORT", 8080)

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	mongoDatabase := strings.TrimSpace(os.Getenv("MONGODB_DATABASE"))
	if mongoDatabase == "" {
		mongoDatabase = "fitness_tracker"
	}

	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	blobCfg := BlobConfig{
		Mode: parseBlobMode("BLOB_MODE", BlobModeLocal),
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PresignTTLSeconds: s3PresignTTL,
		},
	}

	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = AuthModeNone
	}
	if authMode != AuthModeNone && authMode != AuthModeDev {
		log.Printf("WARNING: unknown AUTH_MODE=%q, fallback to none", authMode)
		authMode = AuthModeNone
	}
	authRequired := authMode != AuthModeNone && parseBoolEnv("AUTH_REQUIRED")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "fitness-tracker"
	}

	defaultOwner := strings.TrimSpace(os.Getenv("DEFAULT_OWNER_ID"))
	if defaultOwner == "" {
		defaultOwner = "default"
	}
	if _, err := owner.Parse(defaultOwner); err != nil {
		log.Printf("WARNING: DEFAULT_OWNER_ID=%q is not a valid owner id, anonymous requests will be rejected", defaultOwner)
	}

	tz := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("WARNING: unknown APP_TIMEZONE=%q, fallback to UTC", tz)
		tz = "UTC"
		loc = time.UTC
	}

	return &Config{
		Env:               env,
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		MongoURI:      strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDatabase: mongoDatabase,

		CORSAllowedOrigins:   parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env),
		CORSAllowCredentials: parseBoolEnv("CORS_ALLOW_CREDENTIALS"),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 0),

		Blob:                 blobCfg,
		ReportsMaxPeriodDays: envPositiveInt("REPORTS_MAX_PERIOD_DAYS", 366),

		AuthMode:       authMode,
		AuthRequired:   authRequired,
		JWTSecret:      jwtSecret,
		JWTIssuer:      jwtIssuer,
		JWTTTLMinutes:  envPositiveInt("JWT_TTL_MINUTES", 10080),
		DefaultOwnerID: defaultOwner,

		Timezone: tz,
		Location: loc,

		AnalyticsDefaultPeriodDays: envPositiveInt("ANALYTICS_DEFAULT_PERIOD_DAYS", 30),
		AnalyticsMaxPeriodDays:     envPositiveInt("ANALYTICS_MAX_PERIOD_DAYS", 3660),
		DailyTrendMaxDays:          envPositiveInt("ANALYTICS_DAILY_TREND_MAX_DAYS", 30),
		HeatmapFetchLimit:          envPositiveInt("HEATMAP_FETCH_LIMIT", 1000),

		RunMigrationsOnStartup: parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP"),
	}
}

// Backend names the record store the server will try first.
func (c *Config) Backend() string {
	switch {
	case c.DatabaseURL != "":
		return BackendPostgres
	case c.MongoURI != "":
		return BackendMongo
	default:
		return BackendMemory
	}
}

// Loc returns the calendar location, UTC when unset.
func (c *Config) Loc() *time.Location {
	if c == nil || c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:5173"}
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
		return defaultVal
	}
}

func envInt(key string, defaultVal int) int {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, fallback to %d", key, s, defaultVal)
		return defaultVal
	}
	return v
}

func envPositiveInt(key string, defaultVal int) int {
	v := envInt(key, defaultVal)
	if v <= 0 {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
