package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/userctx"
)

func testConfig(required bool) *config.Config {
	return &config.Config{
		AuthMode:       config.AuthModeDev,
		AuthRequired:   required,
		JWTSecret:      "test-secret-key-for-testing-only",
		JWTIssuer:      "fitness-tracker-test",
		JWTTTLMinutes:  60,
		DefaultOwnerID: "default",
	}
}

// echoOwner writes the resolved owner as the body.
var echoOwner = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := userctx.Owner(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(id.String()))
})

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewService(testConfig(true))

	resp, err := svc.IssueToken("  Alice@Example.com ")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if resp.UserID != "alice@example.com" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	sub, err := svc.VerifyToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice@example.com" {
		t.Fatalf("expected normalized subject, got %s", sub)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	svc := NewService(testConfig(true))
	resp, _ := svc.IssueToken("bob")

	other := NewService(&config.Config{JWTSecret: "another-secret", JWTIssuer: "fitness-tracker-test", JWTTTLMinutes: 60})
	if _, err := other.VerifyToken(resp.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.VerifyToken(resp.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := svc.IssueToken("no spaces allowed"); err != ErrInvalidSubject {
		t.Fatalf("expected ErrInvalidSubject, got %v", err)
	}
}

func TestHandleDevToken(t *testing.T) {
	h := NewHandlers(NewService(testConfig(true)))

	w := httptest.NewRecorder()
	h.HandleDevToken(w, httptest.NewRequest(http.MethodPost, "/api/auth/dev", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp TokenResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.UserID != DefaultDevUserID || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	w = httptest.NewRecorder()
	h.HandleDevToken(w, httptest.NewRequest(http.MethodPost, "/api/auth/dev", bytes.NewBufferString(`{"userId":"a/b"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestResolveOwner(t *testing.T) {
	cfg := testConfig(true)
	svc := NewService(cfg)
	handler := NewMiddleware(cfg, svc).ResolveOwner(echoOwner)
	token, _ := svc.IssueToken("Carol")

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "carol" {
			t.Fatalf("expected owner carol, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("missing token when required", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workouts", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("public path", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if w.Code != http.StatusTeapot {
			t.Fatalf("expected public path to pass without owner, got %d", w.Code)
		}
	})
}

func TestResolveOwnerDefault(t *testing.T) {
	cfg := testConfig(false)
	cfg.AuthMode = config.AuthModeNone
	handler := NewMiddleware(cfg, nil).ResolveOwner(echoOwner)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil))
	if w.Code != http.StatusOK || w.Body.String() != "default" {
		t.Fatalf("expected default owner, got %d %q", w.Code, w.Body.String())
	}

	cfg.DefaultOwnerID = "not valid!"
	handler = NewMiddleware(cfg, nil).ResolveOwner(echoOwner)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a usable default owner, got %d", w.Code)
	}
}
