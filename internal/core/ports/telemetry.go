package ports

import (
	"context"
	"encoding/json"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// TelemetryClient reaches the upstream telemetry/sales collaborator. It
// returns the raw JSON payload on success and the underlying transport or
// decode error on failure.
type TelemetryClient interface {
	Fetch(ctx context.Context, kind domain.TelemetryKind, machineID string) (json.RawMessage, error)
}

// TelemetryService forwards authorized machine-scoped reads upstream. Any
// upstream failure is logged with its kind and machine id and collapsed to
// domain.ErrUpstreamUnavailable; nothing of the upstream error reaches the
// client. No retries.
type TelemetryService interface {
	Fetch(ctx context.Context, kind domain.TelemetryKind, machineID string) (json.RawMessage, error)
}
