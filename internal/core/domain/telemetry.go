package domain

import "fmt"

// TelemetryKind identifies one of the machine-scoped upstream feeds the
// gateway proxies.
type TelemetryKind string

const (
	KindTemperatureSeries TelemetryKind = "temperature-series"
	KindSalesFeedback     TelemetryKind = "sales-feedback"
	KindPaymentRequests   TelemetryKind = "payment-requests"
)

// upstreamPaths maps each kind to the upstream collaborator's route prefix.
var upstreamPaths = map[TelemetryKind]string{
	KindTemperatureSeries: "/temperatures",
	KindSalesFeedback:     "/feedback-results",
	KindPaymentRequests:   "/payment-requests",
}

// UpstreamPath returns the upstream route for the kind and machine id.
func (k TelemetryKind) UpstreamPath(machineID string) (string, error) {
	prefix, ok := upstreamPaths[k]
	if !ok {
		return "", fmt.Errorf("unknown telemetry kind %q", k)
	}
	return prefix + "/" + machineID, nil
}

// Valid reports whether the kind is one the gateway knows how to proxy.
func (k TelemetryKind) Valid() bool {
	_, ok := upstreamPaths[k]
	return ok
}
