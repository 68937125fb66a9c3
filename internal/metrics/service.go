package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("health metric not found")
)

// Service manages the one-per-day health metric records.
type Service struct {
	store storage.HealthMetricsStorage
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.HealthMetricsStorage, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upsert writes the metric for the request's calendar day (today when
// omitted). A second write for the same day overwrites the first.
func (s *Service) Upsert(ctx context.Context, ownerID owner.ID, req *UpsertRequest) (*HealthMetricDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	at := s.now()
	if strings.TrimSpace(req.Date) != "" {
		parsed, _, err := dates.Parse(req.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339", ErrInvalidRequest)
		}
		at = parsed
	}

	m := &storage.HealthMetric{
		Owner:             ownerID,
		Date:              storage.CalendarDay(at, s.loc),
		Weight:            req.Weight,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
		RestingHeartRate:  req.RestingHeartRate,
		SleepHours:        req.SleepHours,
		WaterIntake:       req.WaterIntake,
		StepsCount:        req.StepsCount,
		Notes:             strings.TrimSpace(req.Notes),
	}
	if bp := req.BloodPressure; bp != nil && (bp.Systolic != nil || bp.Diastolic != nil) {
		m.BloodPressure = &storage.BloodPressure{Systolic: bp.Systolic, Diastolic: bp.Diastolic}
	}

	if err := s.store.UpsertHealthMetric(ctx, m); err != nil {
		return nil, err
	}
	dto := ToDTO(m)
	return &dto, nil
}

// List returns metrics between the optional bounds, newest first.
func (s *Service) List(ctx context.Context, ownerID owner.ID, startDate, endDate string, limit int) (*ListResponse, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be <= %d", ErrInvalidRequest, MaxListLimit)
	}

	filter := storage.MetricFilter{Limit: limit}
	if from, err := dates.RangeStart(startDate, s.loc); err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrInvalidRequest)
	} else if from != nil {
		day := storage.CalendarDay(*from, s.loc)
		filter.From = &day
	}
	if to, err := dates.RangeEnd(endDate, s.loc); err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrInvalidRequest)
	} else if to != nil {
		day := storage.CalendarDay(*to, s.loc)
		filter.To = &day
	}

	rows, err := s.store.ListHealthMetrics(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	resp := &ListResponse{Metrics: make([]HealthMetricDTO, 0, len(rows))}
	for i := range rows {
		resp.Metrics = append(resp.Metrics, ToDTO(&rows[i]))
	}
	return resp, nil
}

// Latest returns the most recent metric or ErrNotFound.
func (s *Service) Latest(ctx context.Context, ownerID owner.ID) (*HealthMetricDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	m, err := s.store.LatestHealthMetric(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	dto := ToDTO(m)
	return &dto, nil
}
