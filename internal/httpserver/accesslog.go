package httpserver

import (
	"net/http"
	"time"
)

type Logger interface {
	Printf(format string, v ...any)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLogMiddleware logs one line per request. Query strings are left
// out.
func AccessLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := "INFO"
		if rec.status >= http.StatusInternalServerError {
			level = "ERROR"
		}
		logger.Printf("%s http: method=%s path=%s status=%d dur=%s",
			level, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
