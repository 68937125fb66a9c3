package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

var (
	alice = owner.MustParse("alice")
	bob   = owner.MustParse("bob")
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkoutsScopedByOwner(t *testing.T) {
	ctx := context.Background()
	m := New()

	w := &storage.Workout{Owner: alice, Title: "Run", Date: day("2026-03-01")}
	if err := m.CreateWorkout(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := m.GetWorkout(ctx, bob, w.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if err := m.DeleteWorkout(ctx, bob, w.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign delete, got %v", err)
	}

	foreign := *w
	foreign.Owner = bob
	if err := m.UpdateWorkout(ctx, &foreign); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}

	got, err := m.GetWorkout(ctx, alice, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Run" {
		t.Fatalf("expected title Run, got %q", got.Title)
	}
}

func TestListWorkoutsSortedAndPaged(t *testing.T) {
	ctx := context.Background()
	m := New()

	for _, d := range []string{"2026-03-02", "2026-03-05", "2026-03-01", "2026-03-04", "2026-03-03"} {
		if err := m.CreateWorkout(ctx, &storage.Workout{Owner: alice, Title: d, Date: day(d)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	_ = m.CreateWorkout(ctx, &storage.Workout{Owner: bob, Title: "other", Date: day("2026-03-03")})

	from := day("2026-03-02")
	to := day("2026-03-04")
	rows, total, err := m.ListWorkouts(ctx, alice, storage.WorkoutFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("expected 3 rows, got total=%d len=%d", total, len(rows))
	}
	if rows[0].Title != "2026-03-04" || rows[2].Title != "2026-03-02" {
		t.Fatalf("expected date desc order, got %s..%s", rows[0].Title, rows[2].Title)
	}

	page, total, err := m.ListWorkouts(ctx, alice, storage.WorkoutFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 5 || len(page) != 2 || page[0].Title != "2026-03-03" {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(page))
	}

	empty, _, _ := m.ListWorkouts(ctx, alice, storage.WorkoutFilter{Offset: 10})
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestUpsertHealthMetricOnePerDay(t *testing.T) {
	ctx := context.Background()
	m := New()

	w1, w2 := 80.0, 79.5
	first := &storage.HealthMetric{Owner: alice, Date: day("2026-03-01"), Weight: &w1}
	if err := m.UpsertHealthMetric(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second := &storage.HealthMetric{Owner: alice, Date: day("2026-03-01"), Weight: &w2}
	if err := m.UpsertHealthMetric(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatal("expected upsert to keep the existing id")
	}

	rows, err := m.ListHealthMetrics(ctx, alice, storage.MetricFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || *rows[0].Weight != 79.5 {
		t.Fatalf("expected one overwritten row, got %d", len(rows))
	}
}

func TestLatestHealthMetric(t *testing.T) {
	ctx := context.Background()
	m := New()

	latest, err := m.LatestHealthMetric(ctx, alice)
	if err != nil || latest != nil {
		t.Fatalf("expected nil latest, got %v err=%v", latest, err)
	}

	_ = m.UpsertHealthMetric(ctx, &storage.HealthMetric{Owner: alice, Date: day("2026-03-01")})
	_ = m.UpsertHealthMetric(ctx, &storage.HealthMetric{Owner: alice, Date: day("2026-03-07")})
	_ = m.UpsertHealthMetric(ctx, &storage.HealthMetric{Owner: bob, Date: day("2026-03-09")})

	latest, err = m.LatestHealthMetric(ctx, alice)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !latest.Date.Equal(day("2026-03-07")) {
		t.Fatalf("expected 2026-03-07, got %s", latest.Date)
	}
}

func TestReportsListOmitsData(t *testing.T) {
	ctx := context.Background()
	m := New()

	r := &storage.Report{Owner: alice, Format: "csv", Data: []byte("a,b")}
	if err := m.CreateReport(ctx, r); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := m.ListReports(ctx, alice, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one report, got %d err=%v", len(list), err)
	}
	if list[0].Data != nil {
		t.Fatal("list must not carry report bodies")
	}

	got, err := m.GetReport(ctx, alice, r.ID)
	if err != nil || string(got.Data) != "a,b" {
		t.Fatalf("expected body on get, err=%v", err)
	}
	if err := m.DeleteReport(ctx, bob, r.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
