package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vendwatch/fleet-gateway/internal/api/metrics"
	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// SessionService implements login, logout, identity resolution, and the
// per-session machine selection.
type SessionService struct {
	sessions  ports.SessionStore
	directory ports.DirectoryStore
	verifier  ports.CredentialVerifier
	log       zerolog.Logger
}

func NewSessionService(
	sessions ports.SessionStore,
	directory ports.DirectoryStore,
	verifier ports.CredentialVerifier,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{sessions: sessions, directory: directory, verifier: verifier, log: log}
}

// Login looks the user up in the directory, checks the presented password
// through the credential verifier, and establishes a session snapshotting the
// record's role and machine assignments as of now.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	users, err := s.directory.Users(ctx)
	if err != nil {
		return nil, err
	}

	var record *domain.User
	for i := range users {
		if users[i].Username == username {
			record = &users[i]
			break
		}
	}
	if record == nil || s.verifier.Verify(record.Password, password) != nil {
		s.log.Info().Str("username", username).Msg("login rejected")
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:             uuid.NewString(),
		Username:       record.Username,
		Role:           record.Role,
		SeeAllMachines: record.SeeAllMachines,
		Machines:       record.Machines,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", record.Role).Msg("login succeeded")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	return session, nil
}

// Identity resolves the session ID to the principal it carries.
func (s *SessionService) Identity(ctx context.Context, sessionID string) (domain.Identity, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Identity{}, err
	}
	return session.Identity(), nil
}

// SelectMachine stores the machine the client is currently viewing. A missing
// session or an empty machine reference is a bad request, not an auth failure;
// that is the contract the dashboard relies on.
func (s *SessionService) SelectMachine(ctx context.Context, sessionID string, machine domain.Machine) error {
	if machine.ID == "" {
		return domain.ErrMissingFields
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return domain.ErrMissingFields
	}
	if err != nil {
		return err
	}
	session.SelectedMachine = &machine
	return s.sessions.Save(ctx, session)
}

// SelectedMachine returns the currently viewed machine. No session or no
// selection yields nil without error.
func (s *SessionService) SelectedMachine(ctx context.Context, sessionID string) (*domain.Machine, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session.SelectedMachine, nil
}

// Logout destroys the session before the client is redirected anywhere, so a
// request racing the redirect can never observe the old identity.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if _, err := s.sessions.Get(ctx, sessionID); errors.Is(err, domain.ErrUnauthenticated) {
		return nil
	} else if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	return nil
}
