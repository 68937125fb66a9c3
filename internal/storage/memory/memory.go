package memory

import "github.com/fdg312/fitness-tracker/internal/storage"

// MemoryStorage is the in-memory storage.Store used for local runs and tests.
type MemoryStorage struct {
	*WorkoutsMemoryStorage
	*HealthMetricsMemoryStorage
	*ReportsMemoryStorage
}

var _ storage.Store = (*MemoryStorage)(nil)

func New() *MemoryStorage {
	return &MemoryStorage{
		WorkoutsMemoryStorage:      NewWorkoutsStorage(),
		HealthMetricsMemoryStorage: NewHealthMetricsStorage(),
		ReportsMemoryStorage:       NewReportsMemoryStorage(),
	}
}

func (m *MemoryStorage) Name() string { return "memory" }

func (m *MemoryStorage) Close() error { return nil }

func paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
