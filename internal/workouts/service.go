package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("workout not found")
)

type Service struct {
	store storage.WorkoutsStorage
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.WorkoutsStorage, loc *time.Location) *Service {
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

func (s *Service) Create(ctx context.Context, ownerID owner.ID, req *WorkoutRequest) (*WorkoutDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	w, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	w.Owner = ownerID

	if err := s.store.CreateWorkout(ctx, w); err != nil {
		return nil, err
	}
	dto := ToDTO(w)
	return &dto, nil
}

func (s *Service) Get(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*WorkoutDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	w, err := s.store.GetWorkout(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	dto := ToDTO(w)
	return &dto, nil
}

// Update replaces every field of an existing workout.
func (s *Service) Update(ctx context.Context, ownerID owner.ID, id uuid.UUID, req *WorkoutRequest) (*WorkoutDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	w, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	w.ID = id
	w.Owner = ownerID

	if err := s.store.UpdateWorkout(ctx, w); err != nil {
		return nil, mapStoreErr(err)
	}
	dto := ToDTO(w)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	if ownerID.IsZero() {
		return ErrUnauthorized
	}
	return mapStoreErr(s.store.DeleteWorkout(ctx, ownerID, id))
}

// List returns one page of workouts, newest first.
func (s *Service) List(ctx context.Context, ownerID owner.ID, q ListQuery) (*ListResponse, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		return nil, fmt.Errorf("%w: limit must be <= %d", ErrInvalidRequest, MaxPageLimit)
	}

	filter := storage.WorkoutFilter{Limit: q.Limit, Offset: (q.Page - 1) * q.Limit}
	from, err := dates.RangeStart(q.StartDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrInvalidRequest)
	}
	to, err := dates.RangeEnd(q.EndDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrInvalidRequest)
	}
	filter.From, filter.To = from, to

	rows, total, err := s.store.ListWorkouts(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Workouts:    make([]WorkoutDTO, 0, len(rows)),
		TotalPages:  (total + q.Limit - 1) / q.Limit,
		CurrentPage: q.Page,
		Total:       total,
	}
	for i := range rows {
		resp.Workouts = append(resp.Workouts, ToDTO(&rows[i]))
	}
	return resp, nil
}

func (s *Service) fromRequest(req *WorkoutRequest) (*storage.Workout, error) {
	req.normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	date := s.now()
	if strings.TrimSpace(req.Date) != "" {
		parsed, _, err := dates.Parse(req.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339", ErrInvalidRequest)
		}
		date = parsed
	}

	exercises := make([]storage.Exercise, len(req.Exercises))
	copy(exercises, req.Exercises)

	return &storage.Workout{
		Title:               req.Title,
		Date:                date.UTC(),
		Exercises:           exercises,
		TotalDuration:       *req.TotalDuration,
		TotalCaloriesBurned: *req.TotalCaloriesBurned,
		Intensity:           req.Intensity,
		Mood:                req.Mood,
		Notes:               req.Notes,
	}, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
