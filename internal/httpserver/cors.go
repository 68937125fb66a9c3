package httpserver

import (
	"net/http"
	"strings"

	"github.com/fdg312/fitness-tracker/internal/config"
)

const (
	corsMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsHeaders = "Authorization,Content-Type"
)

type corsPolicy struct {
	origins     map[string]bool
	credentials bool
}

func (p corsPolicy) allows(origin string) bool {
	return origin != "" && (p.origins["*"] || p.origins[origin])
}

// CORSMiddleware echoes allowed origins and answers preflights itself.
// A preflight from an unknown origin gets 204 with no CORS headers.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	policy := corsPolicy{
		origins:     make(map[string]bool, len(cfg.CORSAllowedOrigins)),
		credentials: cfg.CORSAllowCredentials,
	}
	for _, o := range cfg.CORSAllowedOrigins {
		policy.origins[strings.TrimSpace(o)] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := policy.allows(origin)

		if allowed {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if policy.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions && origin != "" {
			if allowed {
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
