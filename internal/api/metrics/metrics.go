// Package metrics defines and registers all custom Prometheus metrics for the
// fleet gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default registry at package load; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fleetgate"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of live sessions in the store.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions.",
	},
)

// ── Fleet metrics ─────────────────────────────────────────────────────────────

// FleetMutationsTotal counts directory/registry mutations.
// Labels:
//   - op: "add_machine", "add_user", "remove_user", "upsert_user_machine"
//   - result: "ok", "conflict", "invalid", "error"
var FleetMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fleet_mutations_total",
		Help:      "Total number of fleet mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Proxy metrics ─────────────────────────────────────────────────────────────

// ProxyRequestsTotal counts telemetry reads forwarded upstream.
// Labels:
//   - kind: "temperature-series", "sales-feedback", "payment-requests"
//   - result: "ok" or "upstream_error"
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of proxied telemetry reads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ProxyDuration measures the end-to-end latency of one upstream read.
// Label:
//   - kind: the telemetry feed queried
var ProxyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_duration_seconds",
		Help:      "Duration of upstream telemetry reads.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)
