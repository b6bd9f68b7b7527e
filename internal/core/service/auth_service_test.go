package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

func newAuthSvc() (*AuthService, *stubIdentityRepo, *stubSessions) {
	repo := newStubIdentityRepo()
	sessions := &stubSessions{}
	return NewAuthService(repo, sessions, "secret", time.Hour), repo, sessions
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newAuthSvc()

	user, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Alice", Email: " Alice@Example.com ", Password: "pass123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("self-registered identities must be USER, got %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	stored := repo.users[user.ID]
	if stored == nil || stored.PasswordHash == "pass123" {
		t.Fatalf("expected a hashed password to be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c", Password: "x"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newAuthSvc()
	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass"}

	_, _ = svc.Register(context.Background(), in)
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions := newAuthSvc()

	admin, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Identity.PasswordHash != "" {
		t.Fatalf("login result must not carry the password hash")
	}
	if res.Redirect != "/dashboard" {
		t.Fatalf("expected USER landing /dashboard, got %q", res.Redirect)
	}
	if len(sessions.started) != 1 || sessions.started[0].ID != admin.ID {
		t.Fatalf("expected a session to be started for %s", admin.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != admin.ID || claims["sid"] != "sid-1" || claims["role"] != string(domain.RoleUser) {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Login_AdminLandsOnAdmin(t *testing.T) {
	svc, repo, _ := newAuthSvc()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	repo.users["admin-001"] = &domain.Identity{ID: "admin-001", Email: "admin@devport.com", Role: domain.RoleAdmin, PasswordHash: string(hash)}

	res, err := svc.Login(context.Background(), "admin@devport.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Redirect != "/admin" {
		t.Fatalf("expected /admin, got %q", res.Redirect)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, sessions := newAuthSvc()

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.started) != 0 {
		t.Fatalf("no session may be started on failure")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SessionFailure(t *testing.T) {
	svc, _, sessions := newAuthSvc()
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Erin", Email: "erin@example.com", Password: "pw"})
	sessions.err = errStore

	if _, err := svc.Login(context.Background(), "erin@example.com", "pw"); !errors.Is(err, errStore) {
		t.Fatalf("expected session error, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newAuthSvc()

	if err := svc.Logout(context.Background(), "sid-9"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("anonymous logout failed: %v", err)
	}
	if len(sessions.ended) != 1 || sessions.ended[0] != "sid-9" {
		t.Fatalf("unexpected ended sessions: %v", sessions.ended)
	}
}
