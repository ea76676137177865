package service

import (
	"context"
	"errors"
	"sync"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// stubDirectory is an in-memory DirectoryStore. Reads hand out copies so the
// stub behaves like the file store: a caller mutating what it read never
// touches stored state until it writes back.
type stubDirectory struct {
	mu       sync.Mutex
	users    []domain.User
	machines []domain.Machine

	usersErr    error
	machinesErr error
	replaceErr  error
}

func (s *stubDirectory) Users(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = u
		out[i].Machines = append([]domain.Machine(nil), u.Machines...)
	}
	return out, nil
}

func (s *stubDirectory) ReplaceUsers(_ context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.users = append([]domain.User(nil), users...)
	return nil
}

func (s *stubDirectory) Machines(_ context.Context) ([]domain.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machinesErr != nil {
		return nil, s.machinesErr
	}
	return append([]domain.Machine(nil), s.machines...), nil
}

func (s *stubDirectory) ReplaceMachines(_ context.Context, machines []domain.Machine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.machines = append([]domain.Machine(nil), machines...)
	return nil
}

// stubAudit records appended entries in order.
type stubAudit struct {
	mu        sync.Mutex
	entries   []string
	appendErr error
	cleared   bool
}

func (a *stubAudit) Append(_ context.Context, action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.appendErr != nil {
		return a.appendErr
	}
	a.entries = append(a.entries, action)
	return nil
}

func (a *stubAudit) Read(_ context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	text := ""
	for _, e := range a.entries {
		text += e + "\n"
	}
	return text, nil
}

func (a *stubAudit) Clear(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
	a.cleared = true
	return nil
}

func (a *stubAudit) lastEntry() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1]
}

var errStoreDown = errors.New("store down")
