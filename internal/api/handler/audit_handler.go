package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Read handles GET /admin/logs: the raw log text, displayed as-is.
func (h *AuditHandler) Read(c echo.Context) error {
	text, err := h.audit.Read(c.Request().Context())
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, text)
}

// Clear handles DELETE /admin/logs. The wipe itself is recorded, naming the
// admin who asked for it.
func (h *AuditHandler) Clear(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.audit.Clear(c.Request().Context(), identity.Username); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
