package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Roles known to the dashboard. Anything else falls into the most
// restrictive visibility branch.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleUsuario    = "usuario"
)

// Usuario is a single record from usuarios.json.
type Usuario struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

// UserStore provides the full user list. Implementations read fresh data on
// every call; nothing in the dashboard caches users.
type UserStore interface {
	LoadUsers() ([]Usuario, error)
}

// FileUserStore loads users from a JSON file on disk.
type FileUserStore struct {
	path string
}

func NewFileUserStore(path string) *FileUserStore {
	return &FileUserStore{path: path}
}

// LoadUsers reads and parses the backing file. A missing file is not an
// error: the store degrades to an empty list so the dashboard keeps serving.
// A file that exists but cannot be parsed is reported to the caller.
func (s *FileUserStore) LoadUsers() ([]Usuario, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Usuario{}, nil
		}
		return nil, fmt.Errorf("failed to read users file %s: %w", s.path, err)
	}

	var users []Usuario
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", s.path, err)
	}
	return users, nil
}
