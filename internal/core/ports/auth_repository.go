package ports

import (
	"context"

	"github.com/devport/portfolio/internal/core/domain"
)

// IdentityRepository defines persistence for identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	// Upsert writes the identity only when no document with its id exists.
	Upsert(ctx context.Context, identity *domain.Identity) error
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// List returns every identity, newest first.
	List(ctx context.Context) ([]domain.Identity, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	// UpdateProfile merges patch into the stored identity. A non-empty
	// passwordHash replaces the stored hash.
	UpdateProfile(ctx context.Context, id string, patch domain.IdentityPatch, passwordHash string) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}
