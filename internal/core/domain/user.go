package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a directory record: an account plus the machines assigned to it.
// Username is the primary key; the directory holds at most one record per
// username. Password is stored in whatever form the configured credential
// scheme produces and is never serialized outward.
type User struct {
	Username       string    `json:"username" bson:"username"`
	Password       string    `json:"-" bson:"password"`
	Role           string    `json:"role" bson:"role"`
	SeeAllMachines bool      `json:"seeAllMachines" bson:"see_all_machines"`
	Machines       []Machine `json:"machines" bson:"machines"`
}

// HasMachine reports whether a machine with the given id is already assigned
// to the user.
func (u *User) HasMachine(id string) bool {
	for _, m := range u.Machines {
		if m.ID == id {
			return true
		}
	}
	return false
}
