package preview

import (
	"sync"

	"pageforge.app/planner/internal/plan"
)

// Store keeps the most recently generated preview file. Slots are keyed by
// session so concurrent codegen calls don't clobber each other's previews; a
// separate guarded "latest" slot serves preview requests that carry no
// session.
type Store struct {
	mu        sync.RWMutex
	bySession map[string]plan.GeneratedFile
	latest    *plan.GeneratedFile
}

func NewStore() *Store {
	return &Store{bySession: make(map[string]plan.GeneratedFile)}
}

// Set records a generated file as the preview for sessionID (if non-empty)
// and as the latest preview overall.
func (s *Store) Set(sessionID string, f plan.GeneratedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		s.bySession[sessionID] = f
	}
	s.latest = &f
}

// Latest returns the most recently set preview file.
func (s *Store) Latest() (plan.GeneratedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return plan.GeneratedFile{}, false
	}
	return *s.latest, true
}

// ForSession returns the preview file recorded for a session, falling back
// to the latest one.
func (s *Store) ForSession(sessionID string) (plan.GeneratedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.bySession[sessionID]; ok {
		return f, true
	}
	if s.latest == nil {
		return plan.GeneratedFile{}, false
	}
	return *s.latest, true
}
