// Package upstream implements the HTTP client for the telemetry/sales
// collaborator the gateway fronts.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client fetches machine-scoped feeds from the upstream service. It reports
// failures verbatim; collapsing them into a client-safe error is the telemetry
// proxy's job.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. A zero timeout falls back
// to defaultTimeout; the upstream read is the only slow network hop in the
// gateway and must not hold a request forever.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET against the upstream route for the kind and machine
// id and returns the raw JSON body. Non-2xx statuses and non-JSON bodies are
// errors.
func (c *Client) Fetch(ctx context.Context, kind domain.TelemetryKind, machineID string) (json.RawMessage, error) {
	path, err := kind.UpstreamPath(url.PathEscape(machineID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned malformed payload")
	}
	return body, nil
}
