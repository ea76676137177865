package ports

import "context"

// AuditLog is the append-only trail of administrative mutations. Entries are
// timestamped lines of freeform text, read back only as an opaque stream.
// Append errors must propagate: a mutation whose audit write failed is
// reported as failed.
type AuditLog interface {
	Append(ctx context.Context, action string) error
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// AuditService is the admin-facing view of the trail: raw text out, and a
// clear operation that itself leaves one entry naming the actor.
type AuditService interface {
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context, actor string) error
}
