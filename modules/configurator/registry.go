package configurator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/furniture-configurator/domain/catalog"
	domain "github.com/example/furniture-configurator/domain/configurator"
)

// Registry holds the live sessions of this process.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	source   catalog.Source
}

// NewRegistry creates a registry whose sessions resolve through source.
func NewRegistry(source catalog.Source) *Registry {
	return &Registry{
		sessions: make(map[string]*domain.Session),
		source:   source,
	}
}

// Create registers a new empty session with a fresh id.
func (r *Registry) Create() *domain.Session {
	return r.CreateWithID(uuid.New().String())
}

// CreateWithID registers a new empty session under id, replacing any
// session already registered there.
func (r *Registry) CreateWithID(id string) *domain.Session {
	s := domain.NewSession(id, r.source)
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// SweepIdle removes sessions inactive since before cutoff and returns their
// ids.
func (r *Registry) SweepIdle(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, s := range r.sessions {
		if s.LastActivity().Before(cutoff) {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
