package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tokenlink/tokenlink/internal/redirect"
)

// MemoryStore is an in-memory implementation of redirect.Repository, used in
// tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*redirect.Record
}

// NewMemoryStore creates a new in-memory redirect store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*redirect.Record),
	}
}

func (m *MemoryStore) Insert(_ context.Context, rec *redirect.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.Key]; exists {
		return redirect.ErrDuplicateKey
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	stored := *rec
	m.records[rec.Key] = &stored

	return nil
}

func (m *MemoryStore) GetByKey(_ context.Context, key string) (*redirect.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, redirect.ErrNotFound
	}

	copied := *rec

	return &copied, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*redirect.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*redirect.Record, 0, len(m.records))

	for _, rec := range m.records {
		copied := *rec
		records = append(records, &copied)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

func (m *MemoryStore) UpdateDestination(_ context.Context, key, destination string) (*redirect.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, redirect.ErrNotFound
	}

	rec.Destination = destination
	rec.UpdatedAt = time.Now()

	copied := *rec

	return &copied, nil
}

func (m *MemoryStore) DeleteByKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[key]; !ok {
		return redirect.ErrNotFound
	}

	delete(m.records, key)

	return nil
}
