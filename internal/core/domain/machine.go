package domain

// Machine is a registered fleet device. ID is the primary key; machines are
// appended to the registry and never mutated or deleted in place.
type Machine struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// DedupMachines returns the machines de-duplicated by id, first occurrence
// wins. Input order is preserved.
func DedupMachines(machines []Machine) []Machine {
	seen := make(map[string]struct{}, len(machines))
	out := make([]Machine, 0, len(machines))
	for _, m := range machines {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
