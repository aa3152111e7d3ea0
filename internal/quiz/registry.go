package quiz

import (
	"sync"

	"github.com/google/uuid"

	"studyjournal-backend/internal/services"
)

// Registry is the single owned home of active sessions. Handlers reach
// sessions only through it; there is no module-level shared state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, &services.NotFoundError{Message: "Quiz session not found"}
	}
	return s, nil
}
