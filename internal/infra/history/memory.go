package history

import (
	"context"
	"strings"
	"sync"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// MemoryRepository keeps recent readings per location in process memory.
// It is the default when no Postgres DSN is configured.
type MemoryRepository struct {
	mu         sync.RWMutex
	data       map[string][]airquality.Reading
	maxEntries int
}

// NewMemoryRepository creates a repository with a per-location retention cap.
// A cap <= 0 defaults to 96 entries.
func NewMemoryRepository(maxEntries int) *MemoryRepository {
	if maxEntries <= 0 {
		maxEntries = 96
	}
	return &MemoryRepository{
		data:       make(map[string][]airquality.Reading),
		maxEntries: maxEntries,
	}
}

// Append stores a reading and enforces retention.
func (r *MemoryRepository) Append(_ context.Context, reading airquality.Reading) error {
	key := locationKey(reading.Location)

	r.mu.Lock()
	defer r.mu.Unlock()

	rows := append(r.data[key], reading)
	if len(rows) > r.maxEntries {
		rows = rows[len(rows)-r.maxEntries:]
	}
	r.data[key] = rows
	return nil
}

// Recent returns up to limit readings for the location, oldest first. No
// readings is not an error; trend analysis treats it as an empty baseline.
func (r *MemoryRepository) Recent(_ context.Context, location string, limit int) ([]airquality.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.data[locationKey(location)]
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	out := make([]airquality.Reading, len(rows))
	copy(out, rows)
	return out, nil
}

func locationKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

var _ airquality.HistoryRepository = (*MemoryRepository)(nil)
