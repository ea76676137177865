package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vendwatch/fleet-gateway/internal/api/metrics"
	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// FleetService implements user/machine CRUD and the assignment edges between
// them. Every mutation runs as one mutex-guarded read-modify-write so no two
// mutations can observe the same pre-state, and appends to the audit log on
// success. An audit write failure fails the operation.
type FleetService struct {
	mu       sync.Mutex
	store    ports.DirectoryStore
	audit    ports.AuditLog
	verifier ports.CredentialVerifier
	log      zerolog.Logger
}

func NewFleetService(
	store ports.DirectoryStore,
	audit ports.AuditLog,
	verifier ports.CredentialVerifier,
	log zerolog.Logger,
) *FleetService {
	return &FleetService{store: store, audit: audit, verifier: verifier, log: log}
}

// AddMachine registers a machine in the fleet registry.
func (s *FleetService) AddMachine(ctx context.Context, id, name string) error {
	if id == "" || name == "" {
		metrics.FleetMutationsTotal.WithLabelValues("add_machine", "invalid").Inc()
		return domain.ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	machines, err := s.store.Machines(ctx)
	if err != nil {
		return s.fail("add_machine", err)
	}
	for _, m := range machines {
		if m.ID == id {
			metrics.FleetMutationsTotal.WithLabelValues("add_machine", "conflict").Inc()
			return domain.ErrMachineExists
		}
	}

	machines = append(machines, domain.Machine{ID: id, Name: name})
	if err := s.store.ReplaceMachines(ctx, machines); err != nil {
		return s.fail("add_machine", err)
	}
	if err := s.audit.Append(ctx, fmt.Sprintf("added machine %s (%s)", name, id)); err != nil {
		return s.fail("add_machine", err)
	}

	s.log.Info().Str("machine_id", id).Str("machine_name", name).Msg("machine added")
	metrics.FleetMutationsTotal.WithLabelValues("add_machine", "ok").Inc()
	return nil
}

// AddUser inserts a new directory record.
func (s *FleetService) AddUser(ctx context.Context, in ports.AddUserInput) error {
	if in.Username == "" || in.Password == "" {
		metrics.FleetMutationsTotal.WithLabelValues("add_user", "invalid").Inc()
		return domain.ErrMissingFields
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return s.fail("add_user", err)
	}
	for _, u := range users {
		if u.Username == in.Username {
			metrics.FleetMutationsTotal.WithLabelValues("add_user", "conflict").Inc()
			return domain.ErrUserExists
		}
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return s.fail("add_user", err)
	}
	machines := in.Machines
	if machines == nil {
		machines = []domain.Machine{}
	}
	users = append(users, domain.User{
		Username:       in.Username,
		Password:       stored,
		Role:           role,
		SeeAllMachines: in.SeeAllMachines,
		Machines:       machines,
	})
	if err := s.store.ReplaceUsers(ctx, users); err != nil {
		return s.fail("add_user", err)
	}
	if err := s.audit.Append(ctx, fmt.Sprintf("added user %s", in.Username)); err != nil {
		return s.fail("add_user", err)
	}

	s.log.Info().Str("username", in.Username).Str("role", role).Msg("user added")
	metrics.FleetMutationsTotal.WithLabelValues("add_user", "ok").Inc()
	return nil
}

// RemoveUser deletes the matching record. Removing an unknown username is a
// silent no-op; the audit trail records the attempt either way.
func (s *FleetService) RemoveUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return s.fail("remove_user", err)
	}
	kept := users[:0]
	for _, u := range users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	if err := s.store.ReplaceUsers(ctx, kept); err != nil {
		return s.fail("remove_user", err)
	}
	if err := s.audit.Append(ctx, fmt.Sprintf("removed user %s", username)); err != nil {
		return s.fail("remove_user", err)
	}

	s.log.Info().Str("username", username).Msg("user removed")
	metrics.FleetMutationsTotal.WithLabelValues("remove_user", "ok").Inc()
	return nil
}

// UpsertUserMachine is the combined create-or-attach primitive: attach the
// machine to an existing user, or create the user carrying just that machine.
func (s *FleetService) UpsertUserMachine(ctx context.Context, in ports.UpsertUserMachineInput) (bool, error) {
	if in.Username == "" || in.Password == "" || in.Machine.ID == "" || in.Machine.Name == "" {
		metrics.FleetMutationsTotal.WithLabelValues("upsert_user_machine", "invalid").Inc()
		return false, domain.ErrMissingFields
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return false, s.fail("upsert_user_machine", err)
	}

	for i := range users {
		if users[i].Username != in.Username {
			continue
		}
		if users[i].HasMachine(in.Machine.ID) {
			metrics.FleetMutationsTotal.WithLabelValues("upsert_user_machine", "conflict").Inc()
			return false, domain.ErrMachineAttached
		}
		users[i].Machines = append(users[i].Machines, in.Machine)
		if err := s.store.ReplaceUsers(ctx, users); err != nil {
			return false, s.fail("upsert_user_machine", err)
		}
		entry := fmt.Sprintf("assigned machine %s (%s) to %s", in.Machine.Name, in.Machine.ID, in.Username)
		if err := s.audit.Append(ctx, entry); err != nil {
			return false, s.fail("upsert_user_machine", err)
		}
		s.log.Info().Str("username", in.Username).Str("machine_id", in.Machine.ID).Msg("machine assigned")
		metrics.FleetMutationsTotal.WithLabelValues("upsert_user_machine", "ok").Inc()
		return false, nil
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return false, s.fail("upsert_user_machine", err)
	}
	users = append(users, domain.User{
		Username: in.Username,
		Password: stored,
		Role:     role,
		Machines: []domain.Machine{in.Machine},
	})
	if err := s.store.ReplaceUsers(ctx, users); err != nil {
		return false, s.fail("upsert_user_machine", err)
	}
	entry := fmt.Sprintf("created user %s with machine %s", in.Username, in.Machine.Name)
	if err := s.audit.Append(ctx, entry); err != nil {
		return false, s.fail("upsert_user_machine", err)
	}
	s.log.Info().Str("username", in.Username).Str("machine_id", in.Machine.ID).Msg("user created with machine")
	metrics.FleetMutationsTotal.WithLabelValues("upsert_user_machine", "ok").Inc()
	return true, nil
}

func (s *FleetService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users(ctx)
}

func (s *FleetService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	return s.store.Machines(ctx)
}

// Profile reloads the user's directory record and resolves its visibility
// scope against the live directory. The session snapshot is deliberately left
// alone: only this query sees fresh data.
func (s *FleetService) Profile(ctx context.Context, username string) (*domain.Identity, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		identity := domain.Identity{
			Username:       users[i].Username,
			Role:           users[i].Role,
			SeeAllMachines: users[i].SeeAllMachines,
			Machines:       users[i].Machines,
		}
		machines, err := s.VisibleMachines(ctx, identity)
		if err != nil {
			return nil, err
		}
		if machines == nil {
			machines = []domain.Machine{}
		}
		identity.Machines = machines
		return &identity, nil
	}
	return nil, domain.ErrUserNotFound
}

// VisibleMachines resolves the visibility scope for an identity: the whole
// de-duplicated fleet for admins and seeAllMachines users, the identity's own
// assignments otherwise.
func (s *FleetService) VisibleMachines(ctx context.Context, identity domain.Identity) ([]domain.Machine, error) {
	if !identity.FleetWide() {
		return identity.Machines, nil
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	return unionMachines(users), nil
}

// unionMachines collects every user's assignments de-duplicated by machine id,
// first occurrence wins. Order follows directory iteration order and is not
// significant.
func unionMachines(users []domain.User) []domain.Machine {
	all := make([]domain.Machine, 0)
	for _, u := range users {
		all = append(all, u.Machines...)
	}
	return domain.DedupMachines(all)
}

func (s *FleetService) fail(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("fleet mutation failed")
	metrics.FleetMutationsTotal.WithLabelValues(op, "error").Inc()
	return err
}
