package heatmap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/storage/memory"
	"github.com/fdg312/fitness-tracker/internal/userctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)

type failingStore struct {
	storage.WorkoutsStorage
}

func (failingStore) ListWorkouts(ctx context.Context, ownerID owner.ID, f storage.WorkoutFilter) ([]storage.Workout, int, error) {
	return nil, 0, errors.New("connection reset")
}

func TestServiceBuild(t *testing.T) {
	store := memory.New()
	alice := owner.MustParse("alice")
	for _, w := range []storage.Workout{workout("2026-06-30", "high"), workout("2026-07-01", "extreme")} {
		w.Owner = alice
		require.NoError(t, store.CreateWorkout(context.Background(), &w))
	}
	other := workout("2026-07-01", "low")
	other.Owner = owner.MustParse("bob")
	require.NoError(t, store.CreateWorkout(context.Background(), &other))

	svc := NewService(store, time.UTC, 0).WithClock(func() time.Time { return serviceNow })
	resp, err := svc.Build(context.Background(), alice, ThemeDark)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Stats.TotalWorkouts)
	assert.Equal(t, 2, resp.Stats.CurrentStreak)
	assert.Equal(t, ThemeDark, resp.Theme)
	assert.Len(t, resp.Legend, 5)
}

func TestServiceBuildFetchFailureYieldsEmptyGrid(t *testing.T) {
	svc := NewService(failingStore{}, time.UTC, 0).WithClock(func() time.Time { return serviceNow })

	resp, err := svc.Build(context.Background(), owner.MustParse("alice"), ThemeLight)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 365)
	assert.Zero(t, resp.Stats.ActiveDays)
}

func TestServiceBuildRequiresOwner(t *testing.T) {
	svc := NewService(memory.New(), time.UTC, 0)

	_, err := svc.Build(context.Background(), "", ThemeLight)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHandleHeatmap(t *testing.T) {
	svc := NewService(memory.New(), time.UTC, 0).WithClock(func() time.Time { return serviceNow })
	h := NewHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/heatmap?theme=dark", nil)
	req = req.WithContext(userctx.WithOwner(req.Context(), owner.MustParse("alice")))
	w := httptest.NewRecorder()
	h.HandleHeatmap(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"days", "weeks", "stats", "legend"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected key %q", key)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/heatmap?theme=neon", nil)
	req = req.WithContext(userctx.WithOwner(req.Context(), owner.MustParse("alice")))
	w = httptest.NewRecorder()
	h.HandleHeatmap(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
