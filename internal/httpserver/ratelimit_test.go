package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remoteAddr, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_SecondRequestReturns429(t *testing.T) {
	handler := RateLimitMiddleware(&config.Config{RateLimitRPS: 1, RateLimitBurst: 1}, okHandler())

	if rr := hit(handler, "1.2.3.4:12345", ""); rr.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rr.Code)
	}

	rr := hit(handler, "1.2.3.4:12345", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "1" {
		t.Errorf("expected Retry-After=1, got %q", rr.Header().Get("Retry-After"))
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error.Code != "rate_limited" {
		t.Errorf("expected code=rate_limited, got %q", body.Error.Code)
	}
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	handler := RateLimitMiddleware(&config.Config{}, okHandler())

	for i := 0; i < 10; i++ {
		if rr := hit(handler, "1.2.3.4:12345", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
}

func TestRateLimit_ClientsAreIndependent(t *testing.T) {
	handler := RateLimitMiddleware(&config.Config{RateLimitRPS: 1, RateLimitBurst: 1}, okHandler())

	if rr := hit(handler, "1.2.3.4:1", ""); rr.Code != http.StatusOK {
		t.Fatalf("client 1: expected 200, got %d", rr.Code)
	}
	if rr := hit(handler, "5.6.7.8:1", ""); rr.Code != http.StatusOK {
		t.Fatalf("client 2: expected 200, got %d", rr.Code)
	}
}

func TestRateLimit_ForwardedForKeysOnFirstHop(t *testing.T) {
	handler := RateLimitMiddleware(&config.Config{RateLimitRPS: 1, RateLimitBurst: 1}, okHandler())

	if rr := hit(handler, "10.0.0.1:1", "9.9.9.9, 10.0.0.1"); rr.Code != http.StatusOK {
		t.Fatalf("first: expected 200, got %d", rr.Code)
	}
	// Same first hop through a different proxy shares the bucket.
	if rr := hit(handler, "10.0.0.2:1", "9.9.9.9"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second: expected 429, got %d", rr.Code)
	}
}

func TestClientLimiters_SweepsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newClientLimiters(1, 1)
	l.now = func() time.Time { return now }

	l.allow("a")
	l.allow("b")
	if l.size() != 2 {
		t.Fatalf("expected 2 clients, got %d", l.size())
	}

	now = now.Add(2 * limiterIdleTTL)
	if !l.allow("c") {
		t.Fatal("expected fresh client to be allowed")
	}
	if l.size() != 1 {
		t.Fatalf("expected idle clients swept, got %d", l.size())
	}
}
