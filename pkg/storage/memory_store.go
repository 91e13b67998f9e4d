package storage

import (
	"context"
	"sync"

	"github.com/probatech/estadoc/pkg/domain"
)

// DefaultCapacity bounds the in-memory store when no capacity is given.
const DefaultCapacity = 1000

// MemoryResultStore is an in-memory implementation of ResultStore. It retains
// the most recent results up to a fixed capacity; reprocessing a document
// replaces its stored result without consuming extra capacity.
type MemoryResultStore struct {
	mu       sync.RWMutex
	capacity int
	results  map[string]*domain.ProcessingResult
	order    []string // insertion order, oldest first
}

// NewMemoryResultStore creates a bounded in-memory result store. A
// non-positive capacity falls back to DefaultCapacity.
func NewMemoryResultStore(capacity int) *MemoryResultStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryResultStore{
		capacity: capacity,
		results:  make(map[string]*domain.ProcessingResult, capacity),
	}
}

// SaveResult stores a processing result, evicting the oldest entry when the
// store is full.
func (s *MemoryResultStore) SaveResult(_ context.Context, result *domain.ProcessingResult) error {
	if result == nil || result.DocumentID == "" {
		return errInvalidResult
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.DocumentID]; exists {
		s.removeFromOrder(result.DocumentID)
	} else if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}

	s.results[result.DocumentID] = result
	s.order = append(s.order, result.DocumentID)
	return nil
}

// GetResult retrieves the stored result for a document.
func (s *MemoryResultStore) GetResult(_ context.Context, documentID string) (*domain.ProcessingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[documentID]
	if !ok {
		return nil, ErrNotFound
	}
	return result, nil
}

// RecentResults returns up to limit results, newest first. A non-positive
// limit returns everything retained.
func (s *MemoryResultStore) RecentResults(_ context.Context, limit int) ([]*domain.ProcessingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*domain.ProcessingResult, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.results[s.order[i]])
	}
	return out, nil
}

// Close is a no-op for the memory store.
func (s *MemoryResultStore) Close() error {
	return nil
}

func (s *MemoryResultStore) removeFromOrder(documentID string) {
	for i, id := range s.order {
		if id == documentID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
