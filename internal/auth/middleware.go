package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/userctx"
)

// Middleware resolves the request owner once and stores it in the context.
type Middleware struct {
	config       *config.Config
	service      *Service
	defaultOwner owner.ID
}

func NewMiddleware(cfg *config.Config, service *Service) *Middleware {
	// An invalid DEFAULT_OWNER_ID leaves the zero owner, so anonymous
	// requests get 401.
	def, _ := owner.Parse(cfg.DefaultOwnerID)
	return &Middleware{
		config:       cfg,
		service:      service,
		defaultOwner: def,
	}
}

// ResolveOwner authenticates a Bearer token when present. Without one the
// request runs as the default owner unless auth is required.
func (m *Middleware) ResolveOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			if m.config.AuthRequired || m.defaultOwner.IsZero() {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(userctx.WithOwner(r.Context(), m.defaultOwner)))
			return
		}

		if m.service == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "tokens are not accepted in this auth mode")
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		subject, err := m.service.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		id, err := owner.Parse(subject)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "token subject is not a valid owner id")
			return
		}

		ctx := userctx.WithUserID(r.Context(), subject)
		ctx = userctx.WithOwner(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}

func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/api/health" || strings.HasPrefix(path, "/api/auth/")
}
