package memory

import (
	"context"
	"sync"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
)

// Store is the in-memory attendance store. Used by tests and as a degraded
// fallback when no durable driver is configured; contents do not survive a
// restart.
type Store struct {
	mu      sync.RWMutex
	records map[string]attendance.StoredRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]attendance.StoredRecord)}
}

var _ attendance.Store = (*Store)(nil)

// Get implements attendance.Store.
func (s *Store) Get(_ context.Context, key string) (attendance.StoredRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	return record, ok, nil
}

// Set implements attendance.Store.
func (s *Store) Set(_ context.Context, key string, value attendance.StoredRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = value
	return nil
}
