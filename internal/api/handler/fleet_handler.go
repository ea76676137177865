package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// FleetHandler owns the /admin fleet-management routes.
type FleetHandler struct {
	fleet ports.FleetService
}

func NewFleetHandler(fleet ports.FleetService) *FleetHandler {
	return &FleetHandler{fleet: fleet}
}

// ListMachines handles GET /admin/machines. Authentication only; every
// logged-in user may browse the registry.
func (h *FleetHandler) ListMachines(c echo.Context) error {
	machines, err := h.fleet.ListMachines(c.Request().Context())
	if err != nil {
		return err
	}
	if machines == nil {
		machines = []domain.Machine{}
	}
	return c.JSON(http.StatusOK, machines)
}

// AddMachine handles POST /admin/machines.
func (h *FleetHandler) AddMachine(c echo.Context) error {
	var req addMachineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.fleet.AddMachine(c.Request().Context(), req.ID, req.Name); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// ListUsers handles GET /admin/users. Passwords never serialize; the domain
// type shields them.
func (h *FleetHandler) ListUsers(c echo.Context) error {
	users, err := h.fleet.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// AddUser handles POST /admin/users.
func (h *FleetHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.fleet.AddUser(c.Request().Context(), ports.AddUserInput{
		Username:       req.Username,
		Password:       req.Password,
		Role:           req.Role,
		SeeAllMachines: req.SeeAllMachines,
		Machines:       toMachines(req.Machines),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// RemoveUser handles DELETE /admin/users/:username. Removing an unknown user
// succeeds; the route is idempotent.
func (h *FleetHandler) RemoveUser(c echo.Context) error {
	if err := h.fleet.RemoveUser(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// UpsertUserMachine handles POST /admin/upsert-user-machine: attach a machine
// to an existing account (200) or create the account around it (201).
func (h *FleetHandler) UpsertUserMachine(c echo.Context) error {
	var req upsertUserMachineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Machine.ID == "" || req.Machine.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "machine id and name are required")
	}

	created, err := h.fleet.UpsertUserMachine(c.Request().Context(), ports.UpsertUserMachineInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Machine:  domain.Machine{ID: req.Machine.ID, Name: req.Machine.Name},
	})
	if err != nil {
		return err
	}
	if created {
		return c.JSON(http.StatusCreated, messageResponse{Message: "user created"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "machine assigned"})
}
