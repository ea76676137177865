package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when a login's username/password pair
	// matches no directory record.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated marks a request with no live session behind it. The
	// HTTP layer turns it into a redirect to the login page, not an error body.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a known identity with insufficient privileges.
	ErrForbidden = errors.New("access forbidden")

	// ErrMissingFields marks a request lacking required fields.
	ErrMissingFields = errors.New("missing required fields")

	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrMachineExists   = errors.New("machine already registered")
	ErrMachineAttached = errors.New("machine already assigned to user")

	// ErrUpstreamUnavailable collapses every upstream failure mode (dial
	// error, non-success status, malformed payload) into one client-safe
	// shape. The underlying cause is logged, never relayed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
