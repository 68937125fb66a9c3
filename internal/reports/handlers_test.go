package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/analytics"
	"github.com/fdg312/fitness-tracker/internal/blob"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/storage/memory"
	"github.com/fdg312/fitness-tracker/internal/userctx"
)

var reportNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, blobs blob.Store) (*http.ServeMux, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	clock := func() time.Time { return reportNow }

	an := analytics.NewService(store, store, analytics.Options{Location: time.UTC}).WithClock(clock)
	gen := NewGenerator(an)
	gen.now = clock

	h := NewHandlers(NewService(store, gen, blobs, Options{}))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reports", h.HandleCreate)
	mux.HandleFunc("GET /api/reports", h.HandleList)
	mux.HandleFunc("GET /api/reports/{id}/download", h.HandleDownload)
	mux.HandleFunc("DELETE /api/reports/{id}", h.HandleDelete)

	cals := 320.0
	w := &storage.Workout{
		Owner:               owner.MustParse("alice"),
		Title:               "Intervals",
		Date:                reportNow.Add(-48 * time.Hour),
		TotalDuration:       40,
		TotalCaloriesBurned: 320,
		Intensity:           "high",
		Exercises:           []storage.Exercise{{Name: "Sprints", Category: "cardio", CaloriesBurned: &cals}},
	}
	if err := store.CreateWorkout(context.Background(), w); err != nil {
		t.Fatalf("seed workout: %v", err)
	}
	return mux, store
}

func call(mux *http.ServeMux, ownerID, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if ownerID != "" {
		req = req.WithContext(userctx.WithOwner(req.Context(), owner.MustParse(ownerID)))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestCreateAndDownloadCSV(t *testing.T) {
	mux, _ := setup(t, nil)

	w := call(mux, "alice", http.MethodPost, "/api/reports", `{"period": 7, "format": "csv"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var dto ReportDTO
	json.NewDecoder(w.Body).Decode(&dto)
	if dto.Period != 7 || dto.SizeBytes == 0 {
		t.Fatalf("unexpected report: %+v", dto)
	}

	w = call(mux, "alice", http.MethodGet, dto.DownloadURL, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %s", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "section,key,workouts,calories,duration,value") {
		t.Fatalf("unexpected csv header: %q", body)
	}
	if !strings.Contains(body, "category,cardio,1,320") {
		t.Fatalf("expected cardio category row, got %q", body)
	}

	w = call(mux, "bob", http.MethodGet, dto.DownloadURL, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another owner, got %d", w.Code)
	}
}

func TestCreatePDFAndYAML(t *testing.T) {
	mux, _ := setup(t, nil)

	w := call(mux, "alice", http.MethodPost, "/api/reports", `{"period": 30, "format": "pdf"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var pdfDTO ReportDTO
	json.NewDecoder(w.Body).Decode(&pdfDTO)
	w = call(mux, "alice", http.MethodGet, pdfDTO.DownloadURL, "")
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF bytes")
	}

	w = call(mux, "alice", http.MethodPost, "/api/reports", `{"format": "yaml"}`)
	var yamlDTO ReportDTO
	json.NewDecoder(w.Body).Decode(&yamlDTO)
	if yamlDTO.Period != 30 {
		t.Fatalf("expected default period 30, got %d", yamlDTO.Period)
	}
	w = call(mux, "alice", http.MethodGet, yamlDTO.DownloadURL, "")
	if !strings.Contains(w.Body.String(), "totalWorkouts: 1") {
		t.Fatalf("expected yaml summary, got %q", w.Body.String())
	}
}

func TestCreateValidation(t *testing.T) {
	mux, _ := setup(t, nil)

	for _, body := range []string{
		`{"format": "docx"}`,
		`{"period": -1}`,
		`{"period": 400}`,
		`nope`,
	} {
		w := call(mux, "alice", http.MethodPost, "/api/reports", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}

	w := call(mux, "", http.MethodPost, "/api/reports", `{"format":"csv"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestReportsInObjectStore(t *testing.T) {
	blobs := blob.NewMemStore()
	mux, _ := setup(t, blobs)

	w := call(mux, "alice", http.MethodPost, "/api/reports", `{"format": "csv"}`)
	var dto ReportDTO
	json.NewDecoder(w.Body).Decode(&dto)
	if blobs.Len() != 1 {
		t.Fatalf("expected object uploaded, got %d objects", blobs.Len())
	}
	if !strings.HasPrefix(dto.DownloadURL, "mem://reports/alice/") {
		t.Fatalf("expected presigned url, got %s", dto.DownloadURL)
	}

	w = call(mux, "alice", http.MethodGet, "/api/reports/"+dto.ID.String()+"/download", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("expected download from object store, got %d", w.Code)
	}

	w = call(mux, "alice", http.MethodGet, "/api/reports", "")
	var list ListResponse
	json.NewDecoder(w.Body).Decode(&list)
	if len(list.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(list.Reports))
	}

	w = call(mux, "alice", http.MethodDelete, "/api/reports/"+dto.ID.String(), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if blobs.Len() != 0 {
		t.Fatalf("expected object removed, got %d", blobs.Len())
	}
}
