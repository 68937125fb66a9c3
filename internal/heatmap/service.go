package heatmap

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)

const DefaultFetchLimit = 1000

type Response struct {
	Grid
	Theme  Theme    `json:"theme"`
	Legend []Swatch `json:"legend"`
}

type Service struct {
	store      storage.WorkoutsStorage
	loc        *time.Location
	fetchLimit int
	now        func() time.Time
}

func NewService(store storage.WorkoutsStorage, loc *time.Location, fetchLimit int) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if fetchLimit <= 0 {
		fetchLimit = DefaultFetchLimit
	}
	return &Service{store: store, loc: loc, fetchLimit: fetchLimit, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Build fetches the owner's workouts for the trailing year and lays them
// out. A fetch failure is logged and yields the all-zero grid.
func (s *Service) Build(ctx context.Context, ownerID owner.ID, theme Theme) (*Response, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	today := s.now()
	workouts := s.fetch(ctx, ownerID, today)

	return &Response{
		Grid:   *Build(workouts, today, s.loc),
		Theme:  theme,
		Legend: Legend(theme),
	}, nil
}

func (s *Service) fetch(ctx context.Context, ownerID owner.ID, today time.Time) []storage.Workout {
	first, last := Window(today, s.loc)
	from := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, s.loc)
	to := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1).Add(-time.Nanosecond)

	rows, total, err := s.store.ListWorkouts(ctx, ownerID, storage.WorkoutFilter{From: &from, To: &to, Limit: s.fetchLimit})
	if err != nil {
		log.Printf("WARN heatmap: fetch failed owner=%s err=%v", ownerID, err)
		return nil
	}
	if total > len(rows) {
		log.Printf("WARN heatmap: truncated owner=%s fetched=%d total=%d", ownerID, len(rows), total)
	}
	for _, w := range rows {
		if w.Intensity == "" {
			continue
		}
		if _, known := IntensityScore(w.Intensity); !known {
			log.Printf("WARN heatmap: unknown intensity %q on workout %s, scoring as moderate", w.Intensity, w.ID)
		}
	}
	return rows
}
