package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// Context keys set by RequireSession.
const (
	identityKey  = "identity"
	sessionIDKey = "session_id"
)

// loginPage is where anonymous visitors are sent. An unauthenticated request
// is a normal outcome, not a fault, so the gate redirects instead of erroring.
const loginPage = "/login.html"

// RequireSession resolves the session cookie to an Identity and injects it
// into the request context. Anything short of a live session redirects to the
// login page.
func RequireSession(sessions ports.SessionService, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := SessionID(c, secret)
			if sid == "" {
				return c.Redirect(http.StatusSeeOther, loginPage)
			}
			identity, err := sessions.Identity(c.Request().Context(), sid)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, loginPage)
			}
			c.Set(identityKey, identity)
			c.Set(sessionIDKey, sid)
			return next(c)
		}
	}
}

// RequireAdmin gates a route on the admin role. It must be stacked after
// RequireSession. Unlike the session gate this is a hard 403: the identity is
// known, just not privileged enough. The sentinel is mapped to its status by
// the central error handler.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get(identityKey).(domain.Identity)
		if !ok || !identity.IsAdmin() {
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// IdentityFrom returns the Identity injected by RequireSession.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
