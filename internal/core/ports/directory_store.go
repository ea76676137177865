package ports

import (
	"context"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// DirectoryStore persists the user directory and the machine registry as two
// whole collections: a read returns the full collection, a write replaces it
// atomically from the caller's perspective. Serialization of read-modify-write
// sequences is the caller's responsibility, not the store's.
type DirectoryStore interface {
	Users(ctx context.Context) ([]domain.User, error)
	ReplaceUsers(ctx context.Context, users []domain.User) error
	Machines(ctx context.Context) ([]domain.Machine, error)
	ReplaceMachines(ctx context.Context, machines []domain.Machine) error
}
