package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/api/metrics"
	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/guard"
)

// LocationDetector resolves a visitor's location from their IP. It never
// fails; unknown visitors get the default location.
type LocationDetector interface {
	Detect(ctx context.Context, ip string) domain.LocationData
}

// NavigationHandler answers screen-access checks and visitor location.
type NavigationHandler struct {
	locator LocationDetector
}

func NewNavigationHandler(locator LocationDetector) *NavigationHandler {
	return &NavigationHandler{locator: locator}
}

type navigateResponse struct {
	Path     string `json:"path"`
	Outcome  string `json:"outcome"`
	Redirect string `json:"redirect,omitempty"`
}

// Navigate evaluates the route guard for ?path= with the caller's session.
// The decision is computed on every request.
//
// @Summary      Check screen access
// @Tags         navigation
// @Produce      json
// @Param        path  query     string  true  "Screen path, e.g. /admin"
// @Success      200   {object}  navigateResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/navigate [get]
func (h *NavigationHandler) Navigate(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	d := guard.Resolve(path, middleware.CurrentIdentity(c))
	return c.JSON(http.StatusOK, navigateResponse{
		Path:     path,
		Outcome:  d.Outcome.String(),
		Redirect: d.Redirect,
	})
}

// Location returns the visitor's derived location and exchange rate.
//
// @Summary      Visitor location
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  domain.LocationData
// @Router       /api/location [get]
func (h *NavigationHandler) Location(c echo.Context) error {
	loc := h.locator.Detect(c.Request().Context(), c.RealIP())
	metrics.LocationsServedTotal.WithLabelValues(loc.Currency).Inc()
	return c.JSON(http.StatusOK, loc)
}
