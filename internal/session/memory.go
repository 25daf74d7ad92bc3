package session

import (
	"context"
	"sync"

	"pageforge.app/planner/common/llm"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Turn
}

// NewMemoryStore returns a process-local Store guarded by a mutex. Histories
// live for the process lifetime only.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string][]llm.Turn)}
}

func (s *memoryStore) Get(ctx context.Context, id string) ([]llm.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy so callers can't observe later appends through the shared slice.
	out := make([]llm.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *memoryStore) Append(ctx context.Context, id string, turns ...llm.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = append(s.sessions[id], turns...)
	return nil
}

func (s *memoryStore) Len(ctx context.Context, id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[id]), nil
}
