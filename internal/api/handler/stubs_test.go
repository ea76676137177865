package handler

import (
	"context"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

type stubSessionService struct {
	loginFn           func(ctx context.Context, username, password string) (*domain.Session, error)
	identityFn        func(ctx context.Context, sessionID string) (domain.Identity, error)
	selectMachineFn   func(ctx context.Context, sessionID string, machine domain.Machine) error
	selectedMachineFn func(ctx context.Context, sessionID string) (*domain.Machine, error)
	logoutFn          func(ctx context.Context, sessionID string) error
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionService) Identity(ctx context.Context, sessionID string) (domain.Identity, error) {
	return s.identityFn(ctx, sessionID)
}

func (s *stubSessionService) SelectMachine(ctx context.Context, sessionID string, machine domain.Machine) error {
	return s.selectMachineFn(ctx, sessionID, machine)
}

func (s *stubSessionService) SelectedMachine(ctx context.Context, sessionID string) (*domain.Machine, error) {
	return s.selectedMachineFn(ctx, sessionID)
}

func (s *stubSessionService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

type stubFleetService struct {
	addMachineFn func(ctx context.Context, id, name string) error
	addUserFn    func(ctx context.Context, in ports.AddUserInput) error
	removeUserFn func(ctx context.Context, username string) error
	upsertFn     func(ctx context.Context, in ports.UpsertUserMachineInput) (bool, error)
	listUsersFn  func(ctx context.Context) ([]domain.User, error)
	listMachFn   func(ctx context.Context) ([]domain.Machine, error)
	profileFn    func(ctx context.Context, username string) (*domain.Identity, error)
	visibleFn    func(ctx context.Context, identity domain.Identity) ([]domain.Machine, error)
}

func (s *stubFleetService) AddMachine(ctx context.Context, id, name string) error {
	return s.addMachineFn(ctx, id, name)
}

func (s *stubFleetService) AddUser(ctx context.Context, in ports.AddUserInput) error {
	return s.addUserFn(ctx, in)
}

func (s *stubFleetService) RemoveUser(ctx context.Context, username string) error {
	return s.removeUserFn(ctx, username)
}

func (s *stubFleetService) UpsertUserMachine(ctx context.Context, in ports.UpsertUserMachineInput) (bool, error) {
	return s.upsertFn(ctx, in)
}

func (s *stubFleetService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubFleetService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	return s.listMachFn(ctx)
}

func (s *stubFleetService) Profile(ctx context.Context, username string) (*domain.Identity, error) {
	return s.profileFn(ctx, username)
}

func (s *stubFleetService) VisibleMachines(ctx context.Context, identity domain.Identity) ([]domain.Machine, error) {
	return s.visibleFn(ctx, identity)
}
