package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/session"
)

// Context keys set by Session.
const (
	ctxSession   = "session"
	ctxSessionID = "session_id"
	ctxIdentity  = "identity"
)

// SessionOpener hydrates the server-side session for a session id.
type SessionOpener interface {
	Open(ctx context.Context, sid string) (*session.Session, error)
}

// IdentityLookup reads the stored identity a session belongs to.
type IdentityLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
}

// IdentityLookupFunc adapts a function to IdentityLookup.
type IdentityLookupFunc func(ctx context.Context, id string) (*domain.Identity, error)

func (f IdentityLookupFunc) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	return f(ctx, id)
}

// Session resolves the bearer token into a hydrated session. A missing,
// invalid or expired token, or a session that no longer exists, leaves the
// request anonymous; route guards decide what anonymous requests may see.
//
// The role always comes from the identity store, so a role change or a
// purge applies to live sessions on their next request. An identity that is
// gone, or a store that cannot answer, leaves the request anonymous.
func Session(jwtSecret string, sessions SessionOpener, identities IdentityLookup, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				log.Debug().Err(err).Msg("ignoring invalid token")
				return next(c)
			}

			sid, _ := claims["sid"].(string)
			sub, _ := claims["sub"].(string)
			if sid == "" || sub == "" {
				return next(c)
			}

			s, err := sessions.Open(c.Request().Context(), sid)
			if err != nil {
				log.Warn().Err(err).Str("sid", sid).Msg("session unavailable, continuing anonymously")
				return next(c)
			}
			identity, ok := s.Identity()
			if !ok || identity.ID != sub {
				return next(c)
			}

			stored, err := identities.FindByID(c.Request().Context(), sub)
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				log.Info().Str("user_id", sub).Msg("session of a removed identity, continuing anonymously")
				return next(c)
			case err != nil:
				log.Warn().Err(err).Str("user_id", sub).Msg("identity lookup failed, continuing anonymously")
				return next(c)
			}
			identity.Role = stored.Role

			c.Set(ctxSession, s)
			c.Set(ctxSessionID, sid)
			c.Set(ctxIdentity, &identity)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// CurrentIdentity returns the request's identity, or nil when anonymous.
func CurrentIdentity(c echo.Context) *domain.Identity {
	id, _ := c.Get(ctxIdentity).(*domain.Identity)
	return id
}

// CurrentSession returns the request's session, or nil when anonymous.
func CurrentSession(c echo.Context) *session.Session {
	s, _ := c.Get(ctxSession).(*session.Session)
	return s
}

func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}
