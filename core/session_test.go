package core

import (
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessionStore()
	u := Usuario{ID: 7, Nombre: "Carlos", Rol: RoleUsuario}

	token := s.Create(u)
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, ok := s.Validate(token)
	if !ok {
		t.Fatal("expected session to be valid right after creation")
	}
	if got != u {
		t.Fatalf("validated user = %+v, want %+v", got, u)
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	s := NewSessionStore()
	u := Usuario{ID: 1, Nombre: "Admin", Rol: RoleAdmin}

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token := s.Create(u)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestSessionExpiryInvariant(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return base }

	token := s.Create(Usuario{ID: 1, Nombre: "Admin", Rol: RoleAdmin})

	s.mu.Lock()
	sess := s.sessions[token]
	s.mu.Unlock()
	if !sess.ExpiresAt.Equal(sess.CreatedAt.Add(SessionTimeout)) {
		t.Fatalf("ExpiresAt = %v, want CreatedAt + %v", sess.ExpiresAt, SessionTimeout)
	}
}

func TestSessionExpiryRemovesEntry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return base }

	token := s.Create(Usuario{ID: 2, Nombre: "Lucía", Rol: RoleSupervisor})

	// Still valid exactly at the deadline.
	s.now = func() time.Time { return base.Add(SessionTimeout) }
	if _, ok := s.Validate(token); !ok {
		t.Fatal("session should still be valid at the expiry instant")
	}

	// One tick past the deadline the entry is gone.
	s.now = func() time.Time { return base.Add(SessionTimeout + time.Second) }
	if _, ok := s.Validate(token); ok {
		t.Fatal("session should be expired")
	}
	if n := s.Len(); n != 0 {
		t.Fatalf("expired entry not removed, store has %d entries", n)
	}

	// And stays gone for subsequent lookups.
	if _, ok := s.Validate(token); ok {
		t.Fatal("expired token must stay invalid")
	}
}

func TestSessionDestroyIsIdempotent(t *testing.T) {
	s := NewSessionStore()
	token := s.Create(Usuario{ID: 3, Nombre: "Carlos", Rol: RoleUsuario})

	s.Destroy(token)
	if _, ok := s.Validate(token); ok {
		t.Fatal("destroyed token must be invalid")
	}
	// Second destroy is a no-op.
	s.Destroy(token)
	s.Destroy("no-such-token")
}

func TestValidateEmptyToken(t *testing.T) {
	s := NewSessionStore()
	if _, ok := s.Validate(""); ok {
		t.Fatal("empty token must never validate")
	}
}
