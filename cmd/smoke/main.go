package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const defaultAPIBase = "http://localhost:8080"

var (
	apiBase    string
	token      string
	client     = &http.Client{Timeout: 30 * time.Second}
	testDate   string
	createdIDs = make(map[string]string)
)

func main() {
	fmt.Println("=== Fitness Tracker E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	testDate = time.Now().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Token", testDevToken},
		{"Create Workout", testCreateWorkout},
		{"Upsert Health Metric", testUpsertMetric},
		{"Workout Analytics", testWorkoutAnalytics},
		{"Health Analytics", testHealthAnalytics},
		{"Dashboard", testDashboard},
		{"Heatmap", testHeatmap},
		{"Create Report (CSV)", testCreateReport},
		{"Download Report", testDownloadReport},
		{"Delete Report", testDeleteReport},
		{"Delete Workout", testDeleteWorkout},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	return call(http.MethodGet, "/healthz", nil, http.StatusOK, nil)
}

// testDevToken fetches a token when the server runs in dev auth mode and
// none was supplied. A 404 means auth mode none.
func testDevToken() error {
	if token != "" {
		return nil
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	err := call(http.MethodPost, "/api/auth/dev", map[string]string{"userId": "smoke"}, http.StatusOK, &resp)
	if err != nil {
		if se, ok := err.(*statusError); ok && se.status == http.StatusNotFound {
			return nil
		}
		return err
	}
	token = resp.AccessToken
	return nil
}

func testCreateWorkout() error {
	body := map[string]interface{}{
		"title":               "Smoke Test Run",
		"date":                testDate,
		"intensity":           "high",
		"mood":                "good",
		"totalDuration":       30,
		"totalCaloriesBurned": 320,
		"exercises": []map[string]interface{}{
			{"name": "Treadmill", "category": "cardio", "duration": 30, "distance": 5},
		},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := call(http.MethodPost, "/api/workouts", body, http.StatusCreated, &resp); err != nil {
		return err
	}
	if resp.ID == "" {
		return fmt.Errorf("workout ID is empty")
	}
	createdIDs["workout"] = resp.ID
	return nil
}

func testUpsertMetric() error {
	body := map[string]interface{}{
		"date":        testDate,
		"weight":      72.5,
		"sleepHours":  7.5,
		"stepsCount":  8000,
		"waterIntake": 2.1,
	}
	return call(http.MethodPost, "/api/metrics", body, http.StatusOK, nil)
}

func testWorkoutAnalytics() error {
	var resp struct {
		Summary struct {
			TotalWorkouts int `json:"totalWorkouts"`
		} `json:"summary"`
	}
	if err := call(http.MethodGet, "/api/analytics/workouts?period=7", nil, http.StatusOK, &resp); err != nil {
		return err
	}
	if resp.Summary.TotalWorkouts < 1 {
		return fmt.Errorf("expected at least one workout, got %d", resp.Summary.TotalWorkouts)
	}
	return nil
}

func testHealthAnalytics() error {
	var resp struct {
		TotalRecords int `json:"totalRecords"`
	}
	if err := call(http.MethodGet, "/api/analytics/health?period=7", nil, http.StatusOK, &resp); err != nil {
		return err
	}
	if resp.TotalRecords < 1 {
		return fmt.Errorf("expected at least one health record, got %d", resp.TotalRecords)
	}
	return nil
}

func testDashboard() error {
	return call(http.MethodGet, "/api/analytics/dashboard", nil, http.StatusOK, nil)
}

func testHeatmap() error {
	var resp struct {
		Days []json.RawMessage `json:"days"`
	}
	if err := call(http.MethodGet, "/api/analytics/heatmap?theme=dark", nil, http.StatusOK, &resp); err != nil {
		return err
	}
	if n := len(resp.Days); n != 365 && n != 366 {
		return fmt.Errorf("expected a one-year grid, got %d days", n)
	}
	return nil
}

func testCreateReport() error {
	var resp struct {
		ID string `json:"id"`
	}
	body := map[string]interface{}{"format": "csv", "period": 30}
	if err := call(http.MethodPost, "/api/reports", body, http.StatusCreated, &resp); err != nil {
		return err
	}
	if resp.ID == "" {
		return fmt.Errorf("report ID is empty")
	}
	createdIDs["report"] = resp.ID
	return nil
}

func testDownloadReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to download")
	}
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/reports/%s/download", apiBase, reportID), nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if !bytes.HasPrefix(data, []byte("section,")) {
		return fmt.Errorf("unexpected CSV header: %.40q", data)
	}
	return nil
}

func testDeleteReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to delete")
	}
	return call(http.MethodDelete, "/api/reports/"+reportID, nil, http.StatusNoContent, nil)
}

func testDeleteWorkout() error {
	workoutID := createdIDs["workout"]
	if workoutID == "" {
		return fmt.Errorf("no workout ID to delete")
	}
	return call(http.MethodDelete, "/api/workouts/"+workoutID, nil, http.StatusOK, nil)
}

// Helper functions

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status=%d body=%s", e.status, e.body)
}

// call sends a JSON request and decodes the response into out when it is
// non-nil.
func call(method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, apiBase+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{status: resp.StatusCode, body: string(raw)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
	}
	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
