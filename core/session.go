package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTimeout is how long a session stays valid after creation.
const SessionTimeout = 2 * time.Hour

// Session binds an opaque token to the user it was issued for. User is a
// copy taken at login time, not a live reference into the store.
type Session struct {
	Token     string
	User      Usuario
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore keeps sessions in a process-wide map guarded by a mutex.
// Expired entries are removed lazily on the first lookup after expiry;
// there is no background sweep. Restarting the process drops all sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create issues a fresh token for the user and stores the session.
func (s *SessionStore) Create(user Usuario) string {
	now := s.now()
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTimeout),
	}
	return token
}

// Validate returns the user bound to token. An unknown token returns false;
// an expired one is deleted and returns false.
func (s *SessionStore) Validate(token string) (Usuario, bool) {
	if token == "" {
		return Usuario{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Usuario{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Usuario{}, false
	}
	return sess.User, true
}

// Destroy removes the session if present. Calling it for an unknown token is
// a no-op.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len reports how many entries the store currently holds, including entries
// that expired but have not been looked up since.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
