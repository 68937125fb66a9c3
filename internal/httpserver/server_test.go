package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/storage/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           8080,
		AuthMode:       config.AuthModeNone,
		DefaultOwnerID: "default",
		Location:       time.UTC,
	}
}

func newTestServer(cfg *config.Config) http.Handler {
	return NewWithStores(cfg, memory.New(), nil).Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(testConfig())

	for _, path := range []string{"/healthz", "/api/health"} {
		rr := do(t, h, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
		var resp map[string]string
		decode(t, rr, &resp)
		if resp["status"] != "ok" || resp["storage"] != "memory" {
			t.Errorf("%s: unexpected body %v", path, resp)
		}
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	h := newTestServer(testConfig())

	rr := do(t, h, http.MethodPost, "/healthz", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

func TestDevAuthRouteOnlyInDevMode(t *testing.T) {
	h := newTestServer(testConfig())

	rr := do(t, h, http.MethodPost, "/api/auth/dev", "", map[string]string{"userId": "alice"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with auth mode none, got %d", rr.Code)
	}
}

func TestWorkoutAnalyticsFlow(t *testing.T) {
	h := newTestServer(testConfig())
	now := time.Now().UTC().Format(time.RFC3339)

	for _, w := range []map[string]interface{}{
		{"title": "Run", "date": now, "intensity": "high", "totalDuration": 30, "totalCaloriesBurned": 300,
			"exercises": []map[string]interface{}{{"name": "Run", "category": "cardio"}}},
		{"title": "Lift", "date": now, "intensity": "moderate", "totalDuration": 45, "totalCaloriesBurned": 200,
			"exercises": []map[string]interface{}{{"name": "Bench", "category": "strength"}}},
	} {
		if rr := do(t, h, http.MethodPost, "/api/workouts", "", w); rr.Code != http.StatusCreated {
			t.Fatalf("create workout: expected 201, got %d body=%s", rr.Code, rr.Body.String())
		}
	}

	rr := do(t, h, http.MethodGet, "/api/analytics/workouts?period=7", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var analyticsResp struct {
		Summary struct {
			TotalWorkouts int     `json:"totalWorkouts"`
			TotalCalories float64 `json:"totalCalories"`
		} `json:"summary"`
		CategoryBreakdown []struct {
			Category string `json:"category"`
		} `json:"categoryBreakdown"`
		DailyTrend []struct {
			Workouts int `json:"workouts"`
		} `json:"dailyTrend"`
	}
	decode(t, rr, &analyticsResp)
	if analyticsResp.Summary.TotalWorkouts != 2 || analyticsResp.Summary.TotalCalories != 500 {
		t.Errorf("unexpected summary: %+v", analyticsResp.Summary)
	}
	if len(analyticsResp.CategoryBreakdown) != 2 {
		t.Errorf("expected 2 categories, got %+v", analyticsResp.CategoryBreakdown)
	}
	if len(analyticsResp.DailyTrend) != 1 || analyticsResp.DailyTrend[0].Workouts != 2 {
		t.Errorf("unexpected daily trend: %+v", analyticsResp.DailyTrend)
	}

	rr = do(t, h, http.MethodGet, "/api/analytics/dashboard", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rr.Code)
	}
	var dash struct {
		Today struct {
			Workouts int `json:"workouts"`
		} `json:"today"`
		LatestMetrics map[string]interface{} `json:"latestMetrics"`
	}
	decode(t, rr, &dash)
	if dash.Today.Workouts != 2 {
		t.Errorf("expected 2 workouts today, got %d", dash.Today.Workouts)
	}
	if len(dash.LatestMetrics) != 0 {
		t.Errorf("expected empty latestMetrics, got %v", dash.LatestMetrics)
	}

	rr = do(t, h, http.MethodGet, "/api/analytics/heatmap?theme=dark", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("heatmap: expected 200, got %d", rr.Code)
	}
	var grid struct {
		Days  []json.RawMessage `json:"days"`
		Theme string            `json:"theme"`
		Stats struct {
			TotalWorkouts int `json:"totalWorkouts"`
			CurrentStreak int `json:"currentStreak"`
		} `json:"stats"`
	}
	decode(t, rr, &grid)
	if grid.Theme != "dark" || grid.Stats.TotalWorkouts != 2 || grid.Stats.CurrentStreak != 1 {
		t.Errorf("unexpected heatmap: theme=%s stats=%+v", grid.Theme, grid.Stats)
	}
	if n := len(grid.Days); n != 365 && n != 366 {
		t.Errorf("expected a one-year grid, got %d days", n)
	}

	if rr := do(t, h, http.MethodGet, "/api/analytics/workouts?period=abc", "", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("bad period: expected 400, got %d", rr.Code)
	}
}

func TestAuthRequiredIsolatesOwners(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = config.AuthModeDev
	cfg.AuthRequired = true
	cfg.JWTSecret = "server-test-secret"
	cfg.JWTIssuer = "fitness-tracker-test"
	cfg.JWTTTLMinutes = 60
	h := newTestServer(cfg)

	if rr := do(t, h, http.MethodGet, "/api/workouts", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	token := func(user string) string {
		rr := do(t, h, http.MethodPost, "/api/auth/dev", "", map[string]string{"userId": user})
		if rr.Code != http.StatusOK {
			t.Fatalf("dev token: expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		var resp struct {
			AccessToken string `json:"accessToken"`
		}
		decode(t, rr, &resp)
		return resp.AccessToken
	}
	alice, bob := token("alice"), token("bob")

	rr := do(t, h, http.MethodPost, "/api/workouts", alice, map[string]interface{}{
		"title": "Yoga", "intensity": "low", "totalDuration": 60, "totalCaloriesBurned": 150,
		"exercises": []map[string]interface{}{{"name": "Flow", "category": "flexibility"}},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rr, &created)

	if rr := do(t, h, http.MethodGet, "/api/workouts/"+created.ID, bob, nil); rr.Code != http.StatusNotFound {
		t.Errorf("foreign workout: expected 404, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/workouts/"+created.ID, alice, nil); rr.Code != http.StatusOK {
		t.Errorf("own workout: expected 200, got %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/api/analytics/workouts", bob, nil)
	var summary struct {
		Summary struct {
			TotalWorkouts int `json:"totalWorkouts"`
		} `json:"summary"`
	}
	decode(t, rr, &summary)
	if summary.Summary.TotalWorkouts != 0 {
		t.Errorf("bob should see no workouts, got %d", summary.Summary.TotalWorkouts)
	}
}

func TestReportsRoundTripInline(t *testing.T) {
	h := newTestServer(testConfig())

	rr := do(t, h, http.MethodPost, "/api/reports", "", map[string]interface{}{"format": "yaml", "period": 7})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create report: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var report struct {
		ID string `json:"id"`
	}
	decode(t, rr, &report)

	rr = do(t, h, http.MethodGet, "/api/reports/"+report.ID+"/download", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("summary")) {
		t.Errorf("expected yaml report body, got %s", rr.Body.String())
	}

	if rr := do(t, h, http.MethodDelete, "/api/reports/"+report.ID, "", nil); rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rr.Code)
	}
}

func TestAccessLogRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := &bufLogger{buf: &buf}
	h := AccessLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/workouts?page=2", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	got := buf.String()
	if !strings.Contains(got, "ERROR http: method=GET path=/api/workouts status=500") {
		t.Errorf("unexpected access log line: %q", got)
	}
}

type bufLogger struct{ buf *bytes.Buffer }

func (l *bufLogger) Printf(format string, v ...any) {
	l.buf.WriteString(fmt.Sprintf(format, v...))
}
