// Package memory provides an in-memory ports.SessionStore, mainly for
// tests and single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/conduit/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save persists the session data in memory.
func (s *Store) Save(ctx context.Context, sessionID string, data map[string]any) error {
	// Copy to ensure isolation from the caller's map, similar to what a
	// serializing backend would give us.
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves a copy of the session data.
func (s *Store) Load(ctx context.Context, sessionID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	copied := make(map[string]any, len(stored))
	for k, v := range stored {
		copied[k] = v
	}
	return copied, nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
