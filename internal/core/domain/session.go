package domain

// Session is the server-held per-client state established at login and
// destroyed at logout. It is never persisted across process restarts when the
// in-memory store is used; the Redis store exists for multi-instance
// deployments and keeps the same no-expiry contract.
//
// Machines is a snapshot of the user's assignments taken at login time and is
// deliberately not refreshed against later directory edits.
type Session struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	SeeAllMachines  bool      `json:"seeAllMachines"`
	Machines        []Machine `json:"machines"`
	SelectedMachine *Machine  `json:"selectedMachine,omitempty"`
}

// Identity returns the principal carried by the session.
func (s *Session) Identity() Identity {
	return Identity{
		Username:       s.Username,
		Role:           s.Role,
		SeeAllMachines: s.SeeAllMachines,
		Machines:       s.Machines,
	}
}
