package session

import (
	"context"
	"errors"
	"testing"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

func TestMemoryStore_CreateGet(t *testing.T) {
	store := NewMemoryStore()

	in := &domain.Session{ID: "sid-1", Username: "alice", Role: domain.RoleAdmin}
	if err := store.Create(context.Background(), in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.Username != "alice" || out.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", out)
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Create(context.Background(), &domain.Session{ID: "sid-1", Username: "alice"})

	first, _ := store.Get(context.Background(), "sid-1")
	first.SelectedMachine = &domain.Machine{ID: "M1"}

	// The edit above was never saved, so a second read must not see it.
	second, _ := store.Get(context.Background(), "sid-1")
	if second.SelectedMachine != nil {
		t.Fatalf("unsaved edit leaked into the store")
	}
}

func TestMemoryStore_SaveRequiresExisting(t *testing.T) {
	store := NewMemoryStore()

	err := store.Save(context.Background(), &domain.Session{ID: "ghost"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMemoryStore_SaveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Create(context.Background(), &domain.Session{ID: "sid-1", Username: "alice"})

	s, _ := store.Get(context.Background(), "sid-1")
	s.SelectedMachine = &domain.Machine{ID: "M1", Name: "Snack-1"}
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, _ := store.Get(context.Background(), "sid-1")
	if out.SelectedMachine == nil || out.SelectedMachine.ID != "M1" {
		t.Fatalf("selection not persisted: %+v", out.SelectedMachine)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Create(context.Background(), &domain.Session{ID: "sid-1"})

	if err := store.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "sid-1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("session survived delete: %v", err)
	}

	// Deleting twice is fine.
	if err := store.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
}
