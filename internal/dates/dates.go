// Package dates holds the calendar conventions shared by the API: day keys
// are 2006-01-02 in the configured location.
package dates

import (
	"errors"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalid = errors.New("invalid date")

// Parse accepts a calendar date (interpreted as midnight in loc) or an
// RFC 3339 timestamp. dateOnly reports which form was given.
func Parse(raw string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, ErrInvalid
	}
	if t, err := time.ParseInLocation(Layout, raw, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, ErrInvalid
}

// RangeStart parses a lower bound. An empty value means unbounded.
func RangeStart(raw string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, _, err := Parse(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RangeEnd parses an inclusive upper bound. A bare date covers the whole day.
func RangeEnd(raw string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, dateOnly, err := Parse(raw, loc)
	if err != nil {
		return nil, err
	}
	if dateOnly {
		t = EndOfDay(t, loc)
	}
	return &t, nil
}

// StartOfDay is local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay is the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Key formats t as its calendar day in loc.
func Key(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}
