package querylog

import (
	"context"
	"sync"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// MemoryLog stores recent advisory queries in process memory.
type MemoryLog struct {
	mu         sync.RWMutex
	entries    []airquality.QueryEntry
	maxEntries int
}

// NewMemoryLog constructs a log with a retention cap (<= 0 defaults to 200).
func NewMemoryLog(maxEntries int) *MemoryLog {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &MemoryLog{maxEntries: maxEntries}
}

// Record appends an entry, dropping the oldest past the cap.
func (l *MemoryLog) Record(_ context.Context, entry airquality.QueryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *MemoryLog) Recent(_ context.Context, limit int) ([]airquality.QueryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]airquality.QueryEntry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

var _ airquality.QueryLog = (*MemoryLog)(nil)
