package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendwatch/fleet-gateway/internal/api/metrics"
	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// TelemetryProxy forwards machine-scoped reads to the upstream collaborator.
// It does not re-check machine ownership; visibility is the caller's concern.
type TelemetryProxy struct {
	client ports.TelemetryClient
	log    zerolog.Logger
}

func NewTelemetryProxy(client ports.TelemetryClient, log zerolog.Logger) *TelemetryProxy {
	return &TelemetryProxy{client: client, log: log}
}

// Fetch relays one upstream read. Failures are logged with their kind and
// machine id, then collapsed to domain.ErrUpstreamUnavailable so no upstream
// detail leaks to the client. No retries.
func (s *TelemetryProxy) Fetch(ctx context.Context, kind domain.TelemetryKind, machineID string) (json.RawMessage, error) {
	if !kind.Valid() || machineID == "" {
		return nil, domain.ErrMissingFields
	}

	start := time.Now()
	payload, err := s.client.Fetch(ctx, kind, machineID)
	metrics.ProxyDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		s.log.Error().Err(err).
			Str("kind", string(kind)).
			Str("machine_id", machineID).
			Msg("upstream read failed")
		metrics.ProxyRequestsTotal.WithLabelValues(string(kind), "upstream_error").Inc()
		return nil, domain.ErrUpstreamUnavailable
	}

	metrics.ProxyRequestsTotal.WithLabelValues(string(kind), "ok").Inc()
	return payload, nil
}
