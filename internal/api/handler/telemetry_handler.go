package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// TelemetryHandler relays the machine-scoped upstream feeds. Which machines a
// caller may query is a visibility concern resolved by the dashboard via /me;
// the proxy itself only requires a live session.
type TelemetryHandler struct {
	proxy ports.TelemetryService
}

func NewTelemetryHandler(proxy ports.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{proxy: proxy}
}

// Temperatures handles GET /temperatures/:machineID.
func (h *TelemetryHandler) Temperatures(c echo.Context) error {
	return h.relay(c, domain.KindTemperatureSeries)
}

// Feedback handles GET /feedback-results/:machineID.
func (h *TelemetryHandler) Feedback(c echo.Context) error {
	return h.relay(c, domain.KindSalesFeedback)
}

// PaymentRequests handles GET /payment-requests/:machineID.
func (h *TelemetryHandler) PaymentRequests(c echo.Context) error {
	return h.relay(c, domain.KindPaymentRequests)
}

func (h *TelemetryHandler) relay(c echo.Context, kind domain.TelemetryKind) error {
	machineID := c.Param("machineID")
	if machineID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "machine id is required")
	}

	payload, err := h.proxy.Fetch(c.Request().Context(), kind, machineID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}
