package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

func newFleetService(dir *stubDirectory, audit *stubAudit) *FleetService {
	return NewFleetService(dir, audit, PlaintextVerifier{}, zerolog.Nop())
}

func TestFleetService_AddMachine(t *testing.T) {
	dir := &stubDirectory{}
	audit := &stubAudit{}
	svc := newFleetService(dir, audit)

	if err := svc.AddMachine(context.Background(), "M1", "Snack-1"); err != nil {
		t.Fatalf("add machine failed: %v", err)
	}
	if got := audit.lastEntry(); got != "added machine Snack-1 (M1)" {
		t.Fatalf("unexpected audit entry: %q", got)
	}

	// Same id again: conflict, registry unchanged.
	if err := svc.AddMachine(context.Background(), "M1", "Snack-1"); !errors.Is(err, domain.ErrMachineExists) {
		t.Fatalf("expected ErrMachineExists, got %v", err)
	}
	machines, _ := svc.ListMachines(context.Background())
	if len(machines) != 1 {
		t.Fatalf("expected 1 machine, got %d", len(machines))
	}
}

func TestFleetService_AddMachine_MissingFields(t *testing.T) {
	svc := newFleetService(&stubDirectory{}, &stubAudit{})

	if err := svc.AddMachine(context.Background(), "", "Snack-1"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty id, got %v", err)
	}
	if err := svc.AddMachine(context.Background(), "M1", ""); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty name, got %v", err)
	}
}

func TestFleetService_AddUser_Duplicate(t *testing.T) {
	dir := &stubDirectory{}
	audit := &stubAudit{}
	svc := newFleetService(dir, audit)

	in := ports.AddUserInput{Username: "alice", Password: "x", Role: domain.RoleAdmin}
	if err := svc.AddUser(context.Background(), in); err != nil {
		t.Fatalf("add user failed: %v", err)
	}
	if got := audit.lastEntry(); got != "added user alice" {
		t.Fatalf("unexpected audit entry: %q", got)
	}

	if err := svc.AddUser(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestFleetService_RemoveUser(t *testing.T) {
	dir := &stubDirectory{users: []domain.User{{Username: "alice", Password: "x", Role: domain.RoleAdmin}}}
	audit := &stubAudit{}
	svc := newFleetService(dir, audit)

	if err := svc.RemoveUser(context.Background(), "alice"); err != nil {
		t.Fatalf("remove user failed: %v", err)
	}
	users, _ := svc.ListUsers(context.Background())
	if len(users) != 0 {
		t.Fatalf("expected empty directory, got %d users", len(users))
	}

	// Removing an unknown user silently succeeds.
	if err := svc.RemoveUser(context.Background(), "nobody"); err != nil {
		t.Fatalf("remove of unknown user errored: %v", err)
	}
}

func TestFleetService_UpsertUserMachine_CreateThenConflict(t *testing.T) {
	dir := &stubDirectory{}
	audit := &stubAudit{}
	svc := newFleetService(dir, audit)

	in := ports.UpsertUserMachineInput{
		Username: "carol",
		Password: "pw",
		Machine:  domain.Machine{ID: "M7", Name: "Combo-7"},
	}

	created, err := svc.UpsertUserMachine(context.Background(), in)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !created {
		t.Fatalf("expected creation on first upsert")
	}
	users, _ := svc.ListUsers(context.Background())
	if len(users) != 1 || len(users[0].Machines) != 1 {
		t.Fatalf("expected one user with exactly one machine, got %+v", users)
	}
	if users[0].Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, users[0].Role)
	}

	// Same (username, machine.id) again: conflict, machine list unchanged.
	if _, err := svc.UpsertUserMachine(context.Background(), in); !errors.Is(err, domain.ErrMachineAttached) {
		t.Fatalf("expected ErrMachineAttached, got %v", err)
	}
	users, _ = svc.ListUsers(context.Background())
	if len(users[0].Machines) != 1 {
		t.Fatalf("machine list changed on conflicting upsert: %+v", users[0].Machines)
	}
}

func TestFleetService_UpsertUserMachine_Attach(t *testing.T) {
	dir := &stubDirectory{users: []domain.User{{
		Username: "carol",
		Password: "pw",
		Role:     domain.RoleUser,
		Machines: []domain.Machine{{ID: "M7", Name: "Combo-7"}},
	}}}
	audit := &stubAudit{}
	svc := newFleetService(dir, audit)

	created, err := svc.UpsertUserMachine(context.Background(), ports.UpsertUserMachineInput{
		Username: "carol",
		Password: "pw",
		Machine:  domain.Machine{ID: "M8", Name: "Combo-8"},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if created {
		t.Fatalf("expected attach, not creation")
	}
	if got := audit.lastEntry(); got != "assigned machine Combo-8 (M8) to carol" {
		t.Fatalf("unexpected audit entry: %q", got)
	}
}

func TestFleetService_UpsertUserMachine_MissingFields(t *testing.T) {
	svc := newFleetService(&stubDirectory{}, &stubAudit{})

	cases := []ports.UpsertUserMachineInput{
		{Password: "pw", Machine: domain.Machine{ID: "M1", Name: "A"}},
		{Username: "u", Machine: domain.Machine{ID: "M1", Name: "A"}},
		{Username: "u", Password: "pw", Machine: domain.Machine{Name: "A"}},
		{Username: "u", Password: "pw", Machine: domain.Machine{ID: "M1"}},
	}
	for i, in := range cases {
		if _, err := svc.UpsertUserMachine(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
}

func TestFleetService_AuditFailureFailsMutation(t *testing.T) {
	audit := &stubAudit{appendErr: errStoreDown}
	svc := newFleetService(&stubDirectory{}, audit)

	if err := svc.AddMachine(context.Background(), "M1", "Snack-1"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected the audit failure to surface, got %v", err)
	}
}

func TestFleetService_VisibilityScope(t *testing.T) {
	dir := &stubDirectory{users: []domain.User{
		{Username: "alice", Role: domain.RoleAdmin, Machines: []domain.Machine{{ID: "A", Name: "a"}}},
		{Username: "bob", Role: domain.RoleUser, Machines: []domain.Machine{{ID: "A", Name: "a"}, {ID: "B", Name: "b"}}},
		{Username: "carol", Role: domain.RoleUser, SeeAllMachines: true, Machines: []domain.Machine{{ID: "C", Name: "c"}}},
	}}
	svc := newFleetService(dir, &stubAudit{})

	// Standard user: exactly its own assignments.
	bob, err := svc.Profile(context.Background(), "bob")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(bob.Machines) != 2 || bob.Machines[0].ID != "A" || bob.Machines[1].ID != "B" {
		t.Fatalf("unexpected scope for bob: %+v", bob.Machines)
	}

	// Admin: de-duplicated union across the directory.
	alice, err := svc.Profile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got := machineIDs(alice.Machines); len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("unexpected fleet-wide scope for alice: %v", got)
	}

	// seeAllMachines override behaves like admin.
	carol, err := svc.Profile(context.Background(), "carol")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(carol.Machines) != 3 {
		t.Fatalf("unexpected scope for carol: %+v", carol.Machines)
	}
}

// A profile's machine list is the identity's visibility scope, resolved by the
// same path the scope query uses. The two views must never drift apart.
func TestFleetService_Profile_MatchesVisibleMachines(t *testing.T) {
	dir := &stubDirectory{users: []domain.User{
		{Username: "alice", Role: domain.RoleAdmin, Machines: []domain.Machine{{ID: "A", Name: "a"}}},
		{Username: "bob", Role: domain.RoleUser, Machines: []domain.Machine{{ID: "A", Name: "a"}, {ID: "B", Name: "b"}}},
	}}
	svc := newFleetService(dir, &stubAudit{})

	for _, username := range []string{"alice", "bob"} {
		profile, err := svc.Profile(context.Background(), username)
		if err != nil {
			t.Fatalf("%s: profile failed: %v", username, err)
		}
		scope, err := svc.VisibleMachines(context.Background(), domain.Identity{
			Username:       profile.Username,
			Role:           profile.Role,
			SeeAllMachines: profile.SeeAllMachines,
			Machines:       profile.Machines,
		})
		if err != nil {
			t.Fatalf("%s: visible machines failed: %v", username, err)
		}
		if got, want := machineIDs(profile.Machines), machineIDs(scope); len(got) != len(want) {
			t.Fatalf("%s: profile scope %v diverges from visibility scope %v", username, got, want)
		}
	}
}

func TestFleetService_Profile_RemovedUser(t *testing.T) {
	svc := newFleetService(&stubDirectory{}, &stubAudit{})

	if _, err := svc.Profile(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFleetService_VisibleMachines_LiveDirectory(t *testing.T) {
	dir := &stubDirectory{users: []domain.User{
		{Username: "bob", Role: domain.RoleUser, Machines: []domain.Machine{{ID: "A", Name: "a"}}},
	}}
	svc := newFleetService(dir, &stubAudit{})

	admin := domain.Identity{Username: "root", Role: domain.RoleAdmin}
	scope, err := svc.VisibleMachines(context.Background(), admin)
	if err != nil {
		t.Fatalf("visible machines failed: %v", err)
	}
	if len(scope) != 1 || scope[0].ID != "A" {
		t.Fatalf("unexpected scope: %+v", scope)
	}

	// A later assignment is visible on the next query without a new login.
	if _, err := svc.UpsertUserMachine(context.Background(), ports.UpsertUserMachineInput{
		Username: "bob", Password: "pw", Machine: domain.Machine{ID: "B", Name: "b"},
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	scope, _ = svc.VisibleMachines(context.Background(), admin)
	if len(scope) != 2 {
		t.Fatalf("expected the fresh assignment in scope, got %+v", scope)
	}
}

// TestFleetService_ConcurrentMutations exercises the serialization invariant:
// no two mutations observe the same pre-state, so none of the concurrent
// writes below can be lost.
func TestFleetService_ConcurrentMutations(t *testing.T) {
	dir := &stubDirectory{}
	svc := newFleetService(dir, &stubAudit{})

	const writers = 32
	var wg sync.WaitGroup
	wg.Add(writers * 2)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("M%02d", i)
			if err := svc.AddMachine(context.Background(), id, "machine "+id); err != nil {
				t.Errorf("add machine %s: %v", id, err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user%02d", i)
			if err := svc.AddUser(context.Background(), ports.AddUserInput{Username: name, Password: "pw", Role: domain.RoleUser}); err != nil {
				t.Errorf("add user %s: %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	machines, _ := svc.ListMachines(context.Background())
	if len(machines) != writers {
		t.Fatalf("lost updates: %d machines registered, want %d", len(machines), writers)
	}
	users, _ := svc.ListUsers(context.Background())
	if len(users) != writers {
		t.Fatalf("lost updates: %d users in directory, want %d", len(users), writers)
	}
}

func machineIDs(machines []domain.Machine) []string {
	ids := make([]string, len(machines))
	for i, m := range machines {
		ids[i] = m.ID
	}
	return ids
}
