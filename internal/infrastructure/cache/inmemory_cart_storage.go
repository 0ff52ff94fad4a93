package cache

import (
	"context"
	"sync"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
)

// InMemoryCartStorage implements cart.Storage on a map.
// This is suitable for single-instance deployments and testing; records do
// not survive a restart.
type InMemoryCartStorage struct {
	mu      sync.RWMutex
	records map[recordID][]byte
}

type recordID struct {
	session string
	key     string
}

var _ cart.Storage = (*InMemoryCartStorage)(nil)

// NewInMemoryCartStorage creates an empty in-memory cart storage
func NewInMemoryCartStorage() *InMemoryCartStorage {
	return &InMemoryCartStorage{records: make(map[recordID][]byte)}
}

// Read returns a copy of the record, or shared.ErrNotFound
func (s *InMemoryCartStorage) Read(_ context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[recordID{sessionID, key}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data
func (s *InMemoryCartStorage) Write(_ context.Context, sessionID, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[recordID{sessionID, key}] = append([]byte(nil), data...)
	return nil
}

// Delete removes the record
func (s *InMemoryCartStorage) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, recordID{sessionID, key})
	return nil
}

// Len returns the number of stored records
func (s *InMemoryCartStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
