package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	got, dateOnly, err := Parse("2026-03-08", loc)
	if err != nil || !dateOnly {
		t.Fatalf("expected date-only parse, err=%v", err)
	}
	if got.Location() != loc || got.Hour() != 0 {
		t.Fatalf("expected local midnight, got %v", got)
	}

	got, dateOnly, err = Parse("2026-03-08T12:30:00Z", loc)
	if err != nil || dateOnly {
		t.Fatalf("expected timestamp parse, err=%v", err)
	}
	if got.Hour() != 12 {
		t.Fatalf("expected 12:30Z, got %v", got)
	}

	if _, _, err := Parse("08/03/2026", loc); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRangeEndCoversWholeDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	end, err := RangeEnd("2026-03-08", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Key(*end, loc) != "2026-03-08" {
		t.Fatalf("end must stay on the same day, got %v", end)
	}
	next := end.Add(time.Nanosecond)
	if Key(next, loc) != "2026-03-09" {
		t.Fatalf("expected next instant to be the next day, got %v", next)
	}
}

func TestEmptyBoundsAreOpen(t *testing.T) {
	start, err := RangeStart("  ", time.UTC)
	if err != nil || start != nil {
		t.Fatalf("expected nil start, got %v err=%v", start, err)
	}
	end, err := RangeEnd("", time.UTC)
	if err != nil || end != nil {
		t.Fatalf("expected nil end, got %v err=%v", end, err)
	}
}

func TestKeyUsesLocation(t *testing.T) {
	instant := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	if Key(instant, time.UTC) != "2026-01-01" {
		t.Fatal("expected UTC key 2026-01-01")
	}
	if Key(instant, time.FixedZone("PST", -8*3600)) != "2025-12-31" {
		t.Fatal("expected previous local day")
	}
}
