package ports

import (
	"context"

	"github.com/devport/portfolio/internal/core/domain"
)

// RegisterInput carries a self-service registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	Identity *domain.Identity
	// Redirect is the landing screen for the identity's role.
	Redirect string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// ProfileInput is a profile edit, optionally with a new password.
type ProfileInput struct {
	Patch       domain.IdentityPatch
	NewPassword string
}

// UserService holds identity administration and self-service profile edits.
type UserService interface {
	List(ctx context.Context) ([]domain.Identity, error)
	ChangeRole(ctx context.Context, actor *domain.Identity, id string, role domain.Role) error
	Delete(ctx context.Context, actor *domain.Identity, id string) error
	UpdateProfile(ctx context.Context, actor *domain.Identity, in ProfileInput) (*domain.Identity, error)
}

// SessionStarter opens and ends server-side sessions.
type SessionStarter interface {
	Start(ctx context.Context, identity domain.Identity) (string, error)
	End(ctx context.Context, sessionID string) error
}
