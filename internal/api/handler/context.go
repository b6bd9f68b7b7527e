package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
)

// currentActor returns the identity hydrated by the Session middleware.
// Guarded routes never reach a handler without one, so a missing identity
// here means the route was registered outside its guard group.
func currentActor(c echo.Context) (*domain.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator on it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// idempotencyKey is the client-supplied key for a public submission.
func idempotencyKey(c echo.Context) string {
	return c.Request().Header.Get("Idempotency-Key")
}
