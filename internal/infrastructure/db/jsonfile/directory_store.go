// Package jsonfile persists the directory and the audit trail as flat files,
// the format the legacy gateway's data lives in: users.json and machines.json
// fully rewritten on every mutation, admin.log appended line by line.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// DirectoryStore keeps the user directory and machine registry in two JSON
// files. Reads return the whole collection; writes replace the file through a
// temp-file rename so a concurrent reader never observes a torn document.
// Callers serialize read-modify-write sequences themselves.
type DirectoryStore struct {
	usersPath    string
	machinesPath string
}

// storedUser mirrors domain.User but serializes the password, which the
// domain type deliberately never does.
type storedUser struct {
	Username       string           `json:"username"`
	Password       string           `json:"password"`
	Role           string           `json:"role"`
	SeeAllMachines bool             `json:"seeAllMachines,omitempty"`
	Machines       []domain.Machine `json:"machines"`
}

func NewDirectoryStore(usersPath, machinesPath string) *DirectoryStore {
	return &DirectoryStore{usersPath: usersPath, machinesPath: machinesPath}
}

func (s *DirectoryStore) Users(_ context.Context) ([]domain.User, error) {
	var stored []storedUser
	if err := readJSON(s.usersPath, &stored); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	users := make([]domain.User, len(stored))
	for i, u := range stored {
		users[i] = domain.User{
			Username:       u.Username,
			Password:       u.Password,
			Role:           u.Role,
			SeeAllMachines: u.SeeAllMachines,
			Machines:       u.Machines,
		}
	}
	return users, nil
}

func (s *DirectoryStore) ReplaceUsers(_ context.Context, users []domain.User) error {
	stored := make([]storedUser, len(users))
	for i, u := range users {
		stored[i] = storedUser{
			Username:       u.Username,
			Password:       u.Password,
			Role:           u.Role,
			SeeAllMachines: u.SeeAllMachines,
			Machines:       u.Machines,
		}
	}
	if err := writeJSON(s.usersPath, stored); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

func (s *DirectoryStore) Machines(_ context.Context) ([]domain.Machine, error) {
	var machines []domain.Machine
	if err := readJSON(s.machinesPath, &machines); err != nil {
		return nil, fmt.Errorf("read machines: %w", err)
	}
	return machines, nil
}

func (s *DirectoryStore) ReplaceMachines(_ context.Context, machines []domain.Machine) error {
	if err := writeJSON(s.machinesPath, machines); err != nil {
		return fmt.Errorf("write machines: %w", err)
	}
	return nil
}

// readJSON decodes the file into v. A missing or empty file decodes to the
// zero collection, matching how the legacy gateway bootstraps fresh state.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
