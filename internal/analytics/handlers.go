package analytics

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fdg312/fitness-tracker/internal/userctx"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleWorkouts returns summary, category breakdown and trends.
// GET /api/analytics/workouts?period=<days>
func (h *Handlers) HandleWorkouts(w http.ResponseWriter, r *http.Request) {
	days, ok := h.period(w, r)
	if !ok {
		return
	}
	ownerID, _ := userctx.Owner(r.Context())
	resp, err := h.service.WorkoutAnalytics(r.Context(), ownerID, days)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/analytics/health?period=<days>
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	days, ok := h.period(w, r)
	if !ok {
		return
	}
	ownerID, _ := userctx.Owner(r.Context())
	resp, err := h.service.ComputeHealthTrends(r.Context(), ownerID, days)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/analytics/dashboard
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := userctx.Owner(r.Context())
	resp, err := h.service.ComputeDashboardSnapshot(r.Context(), ownerID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) period(w http.ResponseWriter, r *http.Request) (int, bool) {
	opts := h.service.Options()
	days, err := ParsePeriod(r.URL.Query().Get("period"), opts.DefaultPeriodDays, opts.MaxPeriodDays)
	if err != nil {
		h.handleError(w, err)
		return 0, false
	}
	return days, true
}

func (h *Handlers) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Printf("ERROR analytics: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
