package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
)

type failingBackend struct {
	MemoryBackend
	failSave bool
	failLoad bool
}

func (b *failingBackend) Save(ctx context.Context, key string, data []byte) error {
	if b.failSave {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Save(ctx, key, data)
}

func (b *failingBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if b.failLoad {
		return nil, errors.New("io error")
	}
	return b.MemoryBackend.Load(ctx, key)
}

func newFailingBackend() *failingBackend {
	return &failingBackend{MemoryBackend: MemoryBackend{data: map[string][]byte{}}}
}

var alice = domain.Identity{ID: "u-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}

func TestSession_LoginSurvivesReload(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	s := New(backend, Key, zerolog.Nop())
	if err := s.Login(ctx, alice); err != nil {
		t.Fatalf("Login: %v", err)
	}

	reloaded := New(backend, Key, zerolog.Nop())
	if reloaded.Hydrated() {
		t.Fatalf("fresh session must report loading")
	}
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	got, ok := reloaded.Identity()
	if !ok || got.ID != alice.ID || got.Role != domain.RoleUser {
		t.Fatalf("unexpected identity after reload: %+v ok=%v", got, ok)
	}
}

func TestSession_HydrateCorruptIsLoggedOut(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"garbage":      "{not json",
		"no id":        `{"name":"x","role":"ADMIN"}`,
		"unknown role": `{"id":"u1","role":"ROOT"}`,
	} {
		backend := NewMemoryBackend()
		_ = backend.Save(ctx, Key, []byte(raw))

		s := New(backend, Key, zerolog.Nop())
		if err := s.Hydrate(ctx); err != nil {
			t.Fatalf("%s: Hydrate returned %v", name, err)
		}
		if s.Authenticated() {
			t.Fatalf("%s: expected unauthenticated", name)
		}
		if !s.Hydrated() {
			t.Fatalf("%s: expected hydrated", name)
		}
	}
}

func TestSession_HydrateBackendFailure(t *testing.T) {
	backend := newFailingBackend()
	backend.failLoad = true

	s := New(backend, Key, zerolog.Nop())
	if err := s.Hydrate(context.Background()); err == nil {
		t.Fatalf("expected backend error")
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated")
	}
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, Key, zerolog.Nop())
	_ = s.Login(ctx, alice)

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated after logout")
	}
	if _, err := backend.Load(ctx, Key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record removed, got %v", err)
	}
}

func TestSession_LoginPersistFailureLeavesStateUnchanged(t *testing.T) {
	backend := newFailingBackend()
	backend.failSave = true

	s := New(backend, Key, zerolog.Nop())
	if err := s.Login(context.Background(), alice); err == nil {
		t.Fatalf("expected error")
	}
	if s.Authenticated() {
		t.Fatalf("failed login must not authenticate")
	}
}

func TestSession_LoginRejectsIllFormed(t *testing.T) {
	s := New(NewMemoryBackend(), Key, zerolog.Nop())
	if err := s.Login(context.Background(), domain.Identity{ID: "x"}); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestSession_UpdateIdentity(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, Key, zerolog.Nop())

	name := "Alice B."
	if _, err := s.UpdateIdentity(ctx, domain.IdentityPatch{Name: &name}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	_ = s.Login(ctx, alice)
	got, err := s.UpdateIdentity(ctx, domain.IdentityPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateIdentity: %v", err)
	}
	if got.Name != name || got.Email != alice.Email {
		t.Fatalf("unexpected merge: %+v", got)
	}
	if !s.Authenticated() {
		t.Fatalf("update must keep the session authenticated")
	}

	reloaded := New(backend, Key, zerolog.Nop())
	_ = reloaded.Hydrate(ctx)
	if id, _ := reloaded.Identity(); id.Name != name {
		t.Fatalf("update not persisted: %+v", id)
	}
}

func TestSession_PasswordHashNeverPersisted(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	withHash := alice
	withHash.PasswordHash = "$2a$10$secret"

	_ = New(backend, Key, zerolog.Nop()).Login(ctx, withHash)
	raw, _ := backend.Load(ctx, Key)
	if len(raw) == 0 || strings.Contains(string(raw), "secret") {
		t.Fatalf("hash leaked into session record: %s", raw)
	}
}

func TestManager_StartOpenEnd(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryBackend(), zerolog.Nop())

	sid, err := m.Start(ctx, alice)
	if err != nil || sid == "" {
		t.Fatalf("Start: %q %v", sid, err)
	}
	s, err := m.Open(ctx, sid)
	if err != nil || !s.Authenticated() {
		t.Fatalf("Open: authenticated=%v err=%v", s.Authenticated(), err)
	}
	if err := m.End(ctx, sid); err != nil {
		t.Fatalf("End: %v", err)
	}
	s, _ = m.Open(ctx, sid)
	if s.Authenticated() {
		t.Fatalf("ended session must be logged out")
	}
}

func TestFileBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	if _, err := b.Load(ctx, Key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s := New(b, Key, zerolog.Nop())
	_ = s.Login(ctx, alice)

	again := New(b, Key, zerolog.Nop())
	_ = again.Hydrate(ctx)
	if !again.Authenticated() {
		t.Fatalf("file session lost across instances")
	}
	if err := again.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := b.Remove(ctx, Key); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
}
