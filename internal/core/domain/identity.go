package domain

// Identity is the authenticated principal attached to a request: the session's
// view of who is calling. Machines is the login-time snapshot, not a live view
// of the directory.
type Identity struct {
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	SeeAllMachines bool      `json:"seeAllMachines"`
	Machines       []Machine `json:"machines"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// FleetWide reports whether the identity sees the whole fleet rather than
// just its own assignments.
func (i Identity) FleetWide() bool {
	return i.IsAdmin() || i.SeeAllMachines
}
