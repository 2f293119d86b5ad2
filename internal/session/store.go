// Package session keeps one RAG state machine per external caller, keyed by
// an opaque id carried in a signed token.
package session

import (
	"sync"

	"github.com/google/uuid"

	"vmap-rag/internal/rag"
)

// Factory builds a fresh, empty session with its collaborators wired.
type Factory func() *rag.Session

// Store maps session ids to live sessions. The map is guarded; the sessions
// themselves are not — each caller serializes access to its own session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*rag.Session
	factory  Factory
}

func NewStore(factory Factory) *Store {
	return &Store{
		sessions: make(map[string]*rag.Session),
		factory:  factory,
	}
}

// Create makes a new session under a fresh id.
func (s *Store) Create() (string, *rag.Session) {
	id := uuid.NewString()
	sess := s.factory()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess
}

// Lookup returns the session for id, if present.
func (s *Store) Lookup(id string) (*rag.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// Evict drops the session for id, resetting it first so its index handle is
// released. Unknown ids are a no-op.
func (s *Store) Evict(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.Reset()
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
