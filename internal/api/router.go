package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vendwatch/fleet-gateway/internal/api/handler"
	"github.com/vendwatch/fleet-gateway/internal/api/middleware"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Sessions  ports.SessionService
	Fleet     ports.FleetService
	Audit     ports.AuditService
	Telemetry ports.TelemetryService

	// SessionSecret signs the session cookie.
	SessionSecret string
	// PublicDir is served as static dashboard assets.
	PublicDir string

	// Mongo and Redis are optional; the readiness probe skips nil clients.
	Mongo *mongo.Database
	Redis *redis.Client

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fleetgate"))

	// --- Gates ---
	requireSession := middleware.RequireSession(deps.Sessions, deps.SessionSecret)
	requireAdmin := middleware.RequireAdmin

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Fleet, deps.SessionSecret)
	fleetHandler := handler.NewFleetHandler(deps.Fleet)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	telemetryHandler := handler.NewTelemetryHandler(deps.Telemetry)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	// --- Session lifecycle ---
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, requireSession)
	e.POST("/set-machine", authHandler.SetMachine)
	e.GET("/get-machine", authHandler.GetMachine)

	// --- Telemetry proxy (authenticated) ---
	e.GET("/temperatures/:machineID", telemetryHandler.Temperatures, requireSession)
	e.GET("/feedback-results/:machineID", telemetryHandler.Feedback, requireSession)
	e.GET("/payment-requests/:machineID", telemetryHandler.PaymentRequests, requireSession)

	// --- Fleet administration ---
	// Machine listing only needs a session; everything else is admin-gated.
	e.GET("/admin/machines", fleetHandler.ListMachines, requireSession)
	e.POST("/admin/machines", fleetHandler.AddMachine, requireSession, requireAdmin)
	e.GET("/admin/users", fleetHandler.ListUsers, requireSession, requireAdmin)
	e.POST("/admin/users", fleetHandler.AddUser, requireSession, requireAdmin)
	e.DELETE("/admin/users/:username", fleetHandler.RemoveUser, requireSession, requireAdmin)
	e.POST("/admin/upsert-user-machine", fleetHandler.UpsertUserMachine, requireSession, requireAdmin)
	e.GET("/admin/logs", auditHandler.Read, requireSession, requireAdmin)
	e.DELETE("/admin/logs", auditHandler.Clear, requireSession, requireAdmin)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static dashboard assets ---
	if deps.PublicDir != "" {
		e.Static("/", deps.PublicDir)
	}

	return e
}
