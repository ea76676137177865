// Package session provides the pluggable session store backends: an in-memory
// map for single-instance deployments (the default — sessions die with the
// process, which is the gateway's documented scope) and a Redis store for
// running more than one instance behind a balancer.
package session

import (
	"context"
	"sync"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// MemoryStore holds sessions in a mutex-guarded map. Get and Save copy the
// session value so concurrent requests on the same session observe a stable
// snapshot rather than each other's in-flight edits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	copy := session
	return &copy, nil
}

func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return domain.ErrUnauthenticated
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
