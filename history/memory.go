package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-memory Store used by tests and by deployments that run
// without a database. Records are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64][]Record

	now func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID:  1,
		records: make(map[int64][]Record),
		now:     time.Now,
	}
}

// Append inserts one record with a monotonic id.
func (s *Memory) Append(ctx context.Context, userID int64, kind Kind, input, output string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := Record{
		ID:     s.nextID,
		UserID: userID,
		Date:   s.now(),
		Kind:   kind,
		Input:  input,
		Output: output,
	}
	s.nextID++
	s.records[userID] = append(s.records[userID], rec)
	return nil
}

// Recent returns up to limit records ordered by date descending.
func (s *Memory) Recent(ctx context.Context, userID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[userID]
	out := make([]Record, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Purge deletes all records for the user.
func (s *Memory) Purge(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}
