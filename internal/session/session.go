// Package session holds the authenticated identity of one client and keeps
// it persisted under a well-known key so that it survives reloads.
//
// A Session starts unauthenticated until Hydrate has read the persisted
// record. Route guards read it through Identity.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
)

// Key is the storage key the identity is persisted under.
const Key = "devport_session_user"

var (
	// ErrNotFound is returned by a Backend when nothing is stored under a key.
	ErrNotFound = errors.New("session: not found")
	// ErrInvalidIdentity is returned by Login for an identity without id or role.
	ErrInvalidIdentity = errors.New("session: identity must carry an id and a known role")
)

// Backend persists raw session records.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Session is the explicit session context of one client.
type Session struct {
	backend Backend
	key     string
	log     zerolog.Logger

	mu       sync.RWMutex
	identity *domain.Identity
	hydrated bool
}

// New returns an unauthenticated session bound to key.
func New(backend Backend, key string, log zerolog.Logger) *Session {
	return &Session{backend: backend, key: key, log: log}
}

// Hydrate reads the persisted record once. A missing, corrupt or ill-formed
// record leaves the session unauthenticated. Only backend I/O failures are
// returned, and the session is unauthenticated in that case too.
func (s *Session) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.hydrated = true

	raw, err := s.backend.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		s.log.Debug().Err(err).Str("key", s.key).Msg("discarding unreadable session record")
		return nil
	}
	if !id.WellFormed() {
		s.log.Debug().Str("key", s.key).Msg("discarding ill-formed session record")
		return nil
	}

	s.identity = &id
	return nil
}

// Login persists identity and marks the session authenticated. Nothing
// changes when persisting fails.
func (s *Session) Login(ctx context.Context, identity domain.Identity) error {
	if !identity.WellFormed() {
		return ErrInvalidIdentity
	}
	identity.PasswordHash = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, identity); err != nil {
		return err
	}
	s.identity = &identity
	s.hydrated = true
	return nil
}

// Logout clears the persisted record and marks the session unauthenticated.
// The in-memory identity is dropped even when the backend fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	if err := s.backend.Remove(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// UpdateIdentity merges patch into the current identity and re-persists it.
// The authentication state is unchanged.
func (s *Session) UpdateIdentity(ctx context.Context, patch domain.IdentityPatch) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	next := patch.Apply(*s.identity)
	if err := s.persist(ctx, next); err != nil {
		return domain.Identity{}, err
	}
	s.identity = &next
	return next, nil
}

// Identity returns a copy of the current identity.
func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Hydrated reports whether the persisted record has been read. Until then
// callers should treat the session as loading.
func (s *Session) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *Session) persist(ctx context.Context, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
