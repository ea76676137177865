package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/api/middleware"
	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the RequireSession gate. Its
// absence on a gated route means the middleware did not run — fail closed.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return identity, nil
}
