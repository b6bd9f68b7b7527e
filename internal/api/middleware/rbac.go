package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/guard"
)

// RedirectResponse tells the caller where to navigate instead.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// Guard enforces the protected-route rule for a group of routes. An empty
// required role admits any identity. The decision is evaluated per request.
//   - anonymous: 401 with Location /login
//   - role mismatch: 403 with Location /
func Guard(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Evaluate(CurrentIdentity(c), required)
			if d.Allowed() {
				return next(c)
			}
			return RespondRedirect(c, d)
		}
	}
}

// RespondRedirect writes a guard redirect outcome.
func RespondRedirect(c echo.Context, d guard.Decision) error {
	status := http.StatusForbidden
	if d.Outcome == guard.RedirectLogin {
		status = http.StatusUnauthorized
	}
	c.Response().Header().Set(echo.HeaderLocation, d.Redirect)
	return c.JSON(status, RedirectResponse{Redirect: d.Redirect})
}
