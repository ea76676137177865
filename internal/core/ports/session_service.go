package ports

import (
	"context"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// SessionService manages the login/logout lifecycle and the per-session
// machine selection.
type SessionService interface {
	// Login verifies credentials against the directory and establishes a new
	// session snapshotting the user's role and machine assignments. Fails with
	// domain.ErrInvalidCredentials when no record matches.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Identity resolves a session ID to the principal it carries, or
	// domain.ErrUnauthenticated.
	Identity(ctx context.Context, sessionID string) (domain.Identity, error)

	// SelectMachine stores the machine the client is currently viewing.
	SelectMachine(ctx context.Context, sessionID string, machine domain.Machine) error

	// SelectedMachine returns the currently viewed machine, or nil when no
	// session exists or nothing has been selected.
	SelectedMachine(ctx context.Context, sessionID string) (*domain.Machine, error)

	// Logout destroys the session synchronously. A destroyed session ID can
	// never be reused; logging out an unknown ID is a no-op.
	Logout(ctx context.Context, sessionID string) error
}
