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

type ReportsMemoryStorage struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]storage.Report
}

func NewReportsMemoryStorage() *ReportsMemoryStorage {
	return &ReportsMemoryStorage{
		reports: make(map[uuid.UUID]storage.Report),
	}
}

func (s *ReportsMemoryStorage) CreateReport(ctx context.Context, r *storage.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	s.reports[r.ID] = *r
	return nil
}

func (s *ReportsMemoryStorage) GetReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok || r.Owner != ownerID {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (s *ReportsMemoryStorage) ListReports(ctx context.Context, ownerID owner.ID, limit, offset int) ([]storage.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]storage.Report, 0)
	for _, r := range s.reports {
		if r.Owner == ownerID {
			r.Data = nil
			filtered = append(filtered, r)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return paginate(filtered, limit, offset), nil
}

func (s *ReportsMemoryStorage) DeleteReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok || r.Owner != ownerID {
		return storage.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
