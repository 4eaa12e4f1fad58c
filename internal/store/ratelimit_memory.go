package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore tracks request timestamps per key in process memory.
// Suitable for tests and single-instance deployments.
type RateLimitMemoryStore struct {
	mu   sync.Mutex
	hits map[string][]int64
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{hits: make(map[string][]int64)}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	cutoff := now - window.Nanoseconds()

	hits := s.hits[key]
	kept := hits[:0]

	for _, at := range hits {
		if at > cutoff {
			kept = append(kept, at)
		}
	}

	kept = append(kept, now)
	s.hits[key] = kept

	return int64(len(kept)), nil
}
