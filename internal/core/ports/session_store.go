package ports

import (
	"context"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// SessionStore holds live sessions keyed by session ID. Get returns
// domain.ErrUnauthenticated when no session exists under the given ID — a
// missing session is the normal anonymous-visitor case, not a fault.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
