package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
)

// Manager hands out server-side sessions, one per session id.
type Manager struct {
	backend Backend
	log     zerolog.Logger
}

func NewManager(backend Backend, log zerolog.Logger) *Manager {
	return &Manager{backend: backend, log: log}
}

// Open returns the hydrated session for sid.
func (m *Manager) Open(ctx context.Context, sid string) (*Session, error) {
	s := New(m.backend, keyFor(sid), m.log)
	if err := s.Hydrate(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Start logs identity into a fresh session and returns its id.
func (m *Manager) Start(ctx context.Context, identity domain.Identity) (string, error) {
	sid := uuid.NewString()
	if err := New(m.backend, keyFor(sid), m.log).Login(ctx, identity); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	m.log.Debug().Str("identity_id", identity.ID).Msg("session started")
	return sid, nil
}

// End removes the session record for sid.
func (m *Manager) End(ctx context.Context, sid string) error {
	if err := m.backend.Remove(ctx, keyFor(sid)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func keyFor(sid string) string {
	return Key + ":" + sid
}
