package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

type WorkoutsMemoryStorage struct {
	mu       sync.RWMutex
	workouts map[uuid.UUID]storage.Workout
}

func NewWorkoutsStorage() *WorkoutsMemoryStorage {
	return &WorkoutsMemoryStorage{
		workouts: make(map[uuid.UUID]storage.Workout),
	}
}

func (s *WorkoutsMemoryStorage) CreateWorkout(ctx context.Context, w *storage.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	s.workouts[w.ID] = cloneWorkout(*w)
	return nil
}

func (s *WorkoutsMemoryStorage) GetWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workouts[id]
	if !ok || w.Owner != ownerID {
		return nil, storage.ErrNotFound
	}
	out := cloneWorkout(w)
	return &out, nil
}

func (s *WorkoutsMemoryStorage) UpdateWorkout(ctx context.Context, w *storage.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.workouts[w.ID]
	if !ok || existing.Owner != w.Owner {
		return storage.ErrNotFound
	}
	w.CreatedAt = existing.CreatedAt
	w.UpdatedAt = time.Now().UTC()

	s.workouts[w.ID] = cloneWorkout(*w)
	return nil
}

func (s *WorkoutsMemoryStorage) DeleteWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workouts[id]
	if !ok || w.Owner != ownerID {
		return storage.ErrNotFound
	}
	delete(s.workouts, id)
	return nil
}

func (s *WorkoutsMemoryStorage) ListWorkouts(ctx context.Context, ownerID owner.ID, f storage.WorkoutFilter) ([]storage.Workout, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]storage.Workout, 0)
	for _, w := range s.workouts {
		if w.Owner != ownerID {
			continue
		}
		if f.From != nil && w.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && w.Date.After(*f.To) {
			continue
		}
		matched = append(matched, w)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Date.After(matched[j].Date)
	})

	page := paginate(matched, f.Limit, f.Offset)
	out := make([]storage.Workout, len(page))
	for i, w := range page {
		out[i] = cloneWorkout(w)
	}
	return out, len(matched), nil
}

func cloneWorkout(w storage.Workout) storage.Workout {
	if w.Exercises != nil {
		w.Exercises = append([]storage.Exercise(nil), w.Exercises...)
	}
	return w
}
