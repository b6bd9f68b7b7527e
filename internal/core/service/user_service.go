package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

type userService struct {
	repo ports.IdentityRepository
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.IdentityRepository) ports.UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.repo.List(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, actor *domain.Identity, id string, role domain.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Delete purges an identity. An admin can never delete itself; the check
// happens before the store is touched.
func (s *userService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.ErrSelfDelete
	}
	return s.repo.Delete(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, actor *domain.Identity, in ports.ProfileInput) (*domain.Identity, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	var hash string
	if in.NewPassword != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(b)
	}

	updated, err := s.repo.UpdateProfile(ctx, actor.ID, in.Patch, hash)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""
	return updated, nil
}

func requireAdmin(actor *domain.Identity) error {
	switch {
	case actor == nil:
		return domain.ErrUnauthenticated
	case actor.Role != domain.RoleAdmin:
		return domain.ErrForbidden
	}
	return nil
}
