package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/fitness-tracker/internal/analytics"
	"github.com/fdg312/fitness-tracker/internal/auth"
	"github.com/fdg312/fitness-tracker/internal/blob"
	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/heatmap"
	"github.com/fdg312/fitness-tracker/internal/metrics"
	"github.com/fdg312/fitness-tracker/internal/reports"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/storage/backend"
	"github.com/fdg312/fitness-tracker/internal/workouts"
)

const shutdownTimeout = 10 * time.Second

// Server wires the record store, the report object store and the feature
// handlers behind one mux.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	store          storage.Store
	blobs          blob.Store
	authMiddleware *auth.Middleware
}

// New opens the configured backends. An unreachable database falls back
// to the in-memory store.
func New(cfg *config.Config) *Server {
	store := backend.OpenOrMemory(context.Background(), cfg, log.Default())

	blobs, _, err := blob.Open(context.Background(), cfg.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: %v", err)
	}

	return NewWithStores(cfg, store, blobs)
}

// NewWithStores builds a server on already opened stores. blobs may be nil.
func NewWithStores(cfg *config.Config, store storage.Store, blobs blob.Store) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		store:  store,
		blobs:  blobs,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	loc := s.config.Loc()

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/health", s.handleHealthz)

	// Auth
	var authService *auth.Service
	if s.config.AuthMode == config.AuthModeDev {
		authService = auth.NewService(s.config)
		authHandler := auth.NewHandlers(authService)
		s.mux.HandleFunc("POST /api/auth/dev", authHandler.HandleDevToken)
	}
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// Workouts
	workoutHandler := workouts.NewHandlers(workouts.NewService(s.store, loc))
	s.mux.HandleFunc("GET /api/workouts", workoutHandler.HandleList)
	s.mux.HandleFunc("POST /api/workouts", workoutHandler.HandleCreate)
	s.mux.HandleFunc("GET /api/workouts/{id}", workoutHandler.HandleGet)
	s.mux.HandleFunc("PUT /api/workouts/{id}", workoutHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /api/workouts/{id}", workoutHandler.HandleDelete)

	// Health metrics
	metricsHandler := metrics.NewHandlers(metrics.NewService(s.store, loc))
	s.mux.HandleFunc("GET /api/metrics", metricsHandler.HandleList)
	s.mux.HandleFunc("POST /api/metrics", metricsHandler.HandleUpsert)
	s.mux.HandleFunc("GET /api/metrics/latest", metricsHandler.HandleLatest)

	// Analytics
	analyticsService := analytics.NewService(s.store, s.store, analytics.Options{
		Location:          loc,
		DefaultPeriodDays: s.config.AnalyticsDefaultPeriodDays,
		MaxPeriodDays:     s.config.AnalyticsMaxPeriodDays,
		DailyTrendMaxDays: s.config.DailyTrendMaxDays,
	})
	analyticsHandler := analytics.NewHandlers(analyticsService)
	s.mux.HandleFunc("GET /api/analytics/workouts", analyticsHandler.HandleWorkouts)
	s.mux.HandleFunc("GET /api/analytics/health", analyticsHandler.HandleHealth)
	s.mux.HandleFunc("GET /api/analytics/dashboard", analyticsHandler.HandleDashboard)

	heatmapHandler := heatmap.NewHandlers(heatmap.NewService(s.store, loc, s.config.HeatmapFetchLimit))
	s.mux.HandleFunc("GET /api/analytics/heatmap", heatmapHandler.HandleHeatmap)

	// Reports
	reportsService := reports.NewService(s.store, reports.NewGenerator(analyticsService), s.blobs, reports.Options{
		DefaultPeriodDays: s.config.AnalyticsDefaultPeriodDays,
		MaxPeriodDays:     s.config.ReportsMaxPeriodDays,
		PresignTTL:        time.Duration(s.config.Blob.S3.PresignTTLSeconds) * time.Second,
	})
	reportsHandler := reports.NewHandlers(reportsService)
	s.mux.HandleFunc("POST /api/reports", reportsHandler.HandleCreate)
	s.mux.HandleFunc("GET /api/reports", reportsHandler.HandleList)
	s.mux.HandleFunc("GET /api/reports/{id}/download", reportsHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /api/reports/{id}", reportsHandler.HandleDelete)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"storage": s.store.Name(),
	})
}

// Handler returns the mux behind the middleware chain, outermost first:
// CORS → Rate Limit → Access Log → Owner → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = s.authMiddleware.ResolveOwner(handler)
	handler = AccessLogMiddleware(log.Default(), handler)
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO http: listening on http://localhost%s (storage=%s)", addr, s.store.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("INFO http: shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Close releases the record store.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
