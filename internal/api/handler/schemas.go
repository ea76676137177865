package handler

import "github.com/vendwatch/fleet-gateway/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Session ---

// loginRequest accepts both the dashboard's form post and JSON clients.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type profileResponse struct {
	Username       string           `json:"username"`
	Role           string           `json:"role"`
	SeeAllMachines bool             `json:"seeAllMachines"`
	Machines       []domain.Machine `json:"machines"`
}

type machineRefRequest struct {
	ID   string `json:"id" form:"id"`
	Name string `json:"name" form:"name"`
}

type setMachineRequest struct {
	Machine machineRefRequest `json:"machine"`
}

type selectedMachineResponse struct {
	Machine *domain.Machine `json:"machine"`
}

// --- Fleet administration ---

type addMachineRequest struct {
	ID   string `json:"id"   form:"id"   validate:"required"`
	Name string `json:"name" form:"name" validate:"required"`
}

type addUserRequest struct {
	Username       string              `json:"username" validate:"required"`
	Password       string              `json:"password" validate:"required"`
	Role           string              `json:"role"     validate:"omitempty,oneof=admin user"`
	SeeAllMachines bool                `json:"seeAllMachines"`
	Machines       []machineRefRequest `json:"machines"`
}

type upsertUserMachineRequest struct {
	Username string            `json:"username" validate:"required"`
	Password string            `json:"password" validate:"required"`
	Role     string            `json:"role"     validate:"omitempty,oneof=admin user"`
	Machine  machineRefRequest `json:"machine"  validate:"required"`
}

func toMachines(reqs []machineRefRequest) []domain.Machine {
	machines := make([]domain.Machine, len(reqs))
	for i, m := range reqs {
		machines[i] = domain.Machine{ID: m.ID, Name: m.Name}
	}
	return machines
}
