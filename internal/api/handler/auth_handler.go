package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/api/middleware"
	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// Role-dependent landing pages after a successful login.
const (
	adminLanding     = "/admin.html"
	dashboardLanding = "/dashboard.html"
	loginLanding     = "/login.html"
)

// AuthHandler owns the session lifecycle routes: login, logout, identity
// queries, and the per-session machine selection.
type AuthHandler struct {
	sessions ports.SessionService
	fleet    ports.FleetService
	secret   string
}

func NewAuthHandler(sessions ports.SessionService, fleet ports.FleetService, secret string) *AuthHandler {
	return &AuthHandler{sessions: sessions, fleet: fleet, secret: secret}
}

// Login handles POST /login: verify credentials, issue the session cookie,
// and send the client to its role's landing page.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	value, err := middleware.EncodeSessionID(h.secret, session.ID)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie(value, 0))

	target := dashboardLanding
	if session.Role == domain.RoleAdmin {
		target = adminLanding
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout handles GET /logout: destroy the session before redirecting so no
// request after the redirect can still see the old identity. Logging out
// without a session is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := middleware.SessionID(c, h.secret); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	c.SetCookie(sessionCookie("", -1))
	return c.Redirect(http.StatusSeeOther, loginLanding)
}

// Me handles GET /me: the identity's live profile. The directory record is
// reloaded on every call — a user removed since login gets a 401 here even
// though the session object still exists.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.fleet.Profile(c.Request().Context(), identity.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Username:       profile.Username,
		Role:           profile.Role,
		SeeAllMachines: profile.SeeAllMachines,
		Machines:       profile.Machines,
	})
}

// SetMachine handles POST /set-machine: remember which machine the dashboard
// is currently viewing. A missing session or machine reference is a 400, not
// an auth failure.
func (h *AuthHandler) SetMachine(c echo.Context) error {
	var req setMachineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sid := middleware.SessionID(c, h.secret)
	machine := domain.Machine{ID: req.Machine.ID, Name: req.Machine.Name}
	if err := h.sessions.SelectMachine(c.Request().Context(), sid, machine); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// GetMachine handles GET /get-machine: the currently viewed machine, or null.
// Ungated; anonymous visitors simply get null.
func (h *AuthHandler) GetMachine(c echo.Context) error {
	sid := middleware.SessionID(c, h.secret)
	machine, err := h.sessions.SelectedMachine(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, selectedMachineResponse{Machine: machine})
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
