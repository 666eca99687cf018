package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type memoryResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.StoredResult
}

// NewMemoryResultStore keeps request results in process memory, keyed by
// request ID. Used when no durable result table is configured and in tests.
func NewMemoryResultStore() outbound.ResultStorePort {
	return &memoryResultStore{
		results: make(map[string]domain.StoredResult),
	}
}

func (s *memoryResultStore) Save(_ context.Context, result domain.StoredResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.RequestID] = result
	return nil
}

func (s *memoryResultStore) Get(_ context.Context, requestID string) (*domain.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[requestID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrResultNotFound, requestID)
	}
	return &result, nil
}
