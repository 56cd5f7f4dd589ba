package core

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when username/password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService defines authentication behaviour.
type AuthService interface {
	Authenticate(username, password string) (Usuario, error)
}

// defaultPasswords maps a role to its expected password. Every account of a
// role shares the same credential; there is no per-user secret. This is the
// demo scheme the dashboard is built around, kept as-is rather than replaced
// with hashed per-user passwords.
var defaultPasswords = map[string]string{
	RoleAdmin:      "admin123",
	RoleSupervisor: "super123",
	RoleUsuario:    "user123",
}

// fallbackPassword is expected for any role missing from defaultPasswords.
const fallbackPassword = "default123"

// TableAuthService authenticates against the user list using the role-keyed
// password table above.
type TableAuthService struct {
	users UserStore
}

func NewTableAuthService(users UserStore) *TableAuthService {
	return &TableAuthService{users: users}
}

// Authenticate matches username case-insensitively against Nombre and the
// password exactly against the role's expected password. The first matching
// record wins.
func (s *TableAuthService) Authenticate(username, password string) (Usuario, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return Usuario{}, ErrInvalidCredentials
	}

	users, err := s.users.LoadUsers()
	if err != nil {
		return Usuario{}, err
	}

	for _, u := range users {
		expected, ok := defaultPasswords[u.Rol]
		if !ok {
			expected = fallbackPassword
		}
		if strings.EqualFold(u.Nombre, username) && password == expected {
			return u, nil
		}
	}
	return Usuario{}, ErrInvalidCredentials
}
