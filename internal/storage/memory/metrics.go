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

// HealthMetricsMemoryStorage keeps one row per owner and day.
type HealthMetricsMemoryStorage struct {
	mu      sync.RWMutex
	metrics map[string]storage.HealthMetric // key: "owner|2006-01-02"
}

func NewHealthMetricsStorage() *HealthMetricsMemoryStorage {
	return &HealthMetricsMemoryStorage{
		metrics: make(map[string]storage.HealthMetric),
	}
}

func dayKey(ownerID owner.ID, day time.Time) string {
	return ownerID.String() + "|" + day.UTC().Format("2006-01-02")
}

func (s *HealthMetricsMemoryStorage) UpsertHealthMetric(ctx context.Context, m *storage.HealthMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(m.Owner, m.Date)
	now := time.Now().UTC()

	if existing, ok := s.metrics[key]; ok {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
	} else {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	s.metrics[key] = *m
	return nil
}

func (s *HealthMetricsMemoryStorage) ListHealthMetrics(ctx context.Context, ownerID owner.ID, f storage.MetricFilter) ([]storage.HealthMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.HealthMetric, 0)
	for _, m := range s.metrics {
		if m.Owner != ownerID {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return paginate(out, f.Limit, 0), nil
}

func (s *HealthMetricsMemoryStorage) LatestHealthMetric(ctx context.Context, ownerID owner.ID) (*storage.HealthMetric, error) {
	rows, err := s.ListHealthMetrics(ctx, ownerID, storage.MetricFilter{Limit: 1})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}
