package ports

import (
	"context"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// AddUserInput carries the fields of an admin user-creation request.
type AddUserInput struct {
	Username       string
	Password       string
	Role           string
	SeeAllMachines bool
	Machines       []domain.Machine
}

// UpsertUserMachineInput carries the combined create-or-attach request.
type UpsertUserMachineInput struct {
	Username string
	Password string
	// Role applies only when the user is created; defaults to domain.RoleUser.
	Role    string
	Machine domain.Machine
}

// FleetService is CRUD over users, machines, and the assignment edges between
// them. Every mutation is a serialized read-modify-write against the directory
// store followed by an audit append; no two mutations observe the same
// pre-state.
type FleetService interface {
	// AddMachine registers a machine. domain.ErrMachineExists on duplicate id,
	// domain.ErrMissingFields when id or name is empty.
	AddMachine(ctx context.Context, id, name string) error

	// AddUser inserts a directory record. domain.ErrUserExists on duplicate
	// username.
	AddUser(ctx context.Context, in AddUserInput) error

	// RemoveUser deletes the matching record; silently no-ops when absent.
	RemoveUser(ctx context.Context, username string) error

	// UpsertUserMachine attaches the machine to an existing user (created
	// false) or creates the user with that single machine (created true).
	// domain.ErrMachineAttached when the user already holds the machine,
	// domain.ErrMissingFields on incomplete input.
	UpsertUserMachine(ctx context.Context, in UpsertUserMachineInput) (created bool, err error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	ListMachines(ctx context.Context) ([]domain.Machine, error)

	// Profile reloads the identity's directory record and resolves its
	// visibility scope: admins and seeAllMachines users get the de-duplicated
	// union of every user's assignments, everyone else their own live list.
	// domain.ErrUserNotFound when the record has been removed since login.
	Profile(ctx context.Context, username string) (*domain.Identity, error)

	// VisibleMachines resolves the visibility scope for an identity against
	// the live directory.
	VisibleMachines(ctx context.Context, identity domain.Identity) ([]domain.Machine, error)
}
