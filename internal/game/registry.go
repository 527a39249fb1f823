// Package game contains the real-time match core: per-game sessions,
// the process-wide session registry, and the matchmaking queue. The
// transport layer feeds it decoded frames; it never touches sockets
// directly.
package game

import "sync"

// Registry is the process-wide map from game id to session. Its lock
// covers only insertion, lookup and deletion; per-session state has its
// own lock and the two are never held together.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add inserts a session under its id.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove deletes the session with the given id. Game ids are random
// uuids and never reused.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
