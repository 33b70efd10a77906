package session

import (
	"context"
	"sync"
)

// MemoryStore keeps conversation histories in process memory. Histories
// are copied on read and write so callers never share a slice with the
// store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Turn),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		return []Turn{}, nil
	}
	return append([]Turn(nil), turns...), nil
}

func (s *MemoryStore) Put(ctx context.Context, sessionID string, turns []Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append([]Turn(nil), turns...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
