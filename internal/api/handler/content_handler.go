package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
	"github.com/devport/portfolio/internal/currency"
)

// ContentHandler serves the public portfolio pages and their admin editors.
type ContentHandler struct {
	content ports.ContentService
	locator LocationDetector
}

func NewContentHandler(content ports.ContentService, locator LocationDetector) *ContentHandler {
	return &ContentHandler{content: content, locator: locator}
}

// --- Request / Response types ---

type projectRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	LiveURL     string   `json:"live_url"`
	DemoURL     string   `json:"demo_url"`
	ImageURL    string   `json:"image_url"`
}

type serviceRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// localizedService is a catalog entry with its price in the visitor's
// currency. LocalizedPrice is empty when the price has no dollar amount.
type localizedService struct {
	domain.Service
	LocalizedPrice string `json:"localized_price"`
	Currency       string `json:"currency"`
}

// --- Public ---

// About returns the owner's profile.
//
// @Summary      About
// @Tags         content
// @Produce      json
// @Success      200  {object}  domain.AboutData
// @Failure      404  {object}  map[string]string
// @Router       /api/about [get]
func (h *ContentHandler) About(c echo.Context) error {
	about, err := h.content.About(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

// Projects lists projects newest first.
//
// @Summary      List projects
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.Project
// @Router       /api/projects [get]
func (h *ContentHandler) Projects(c echo.Context) error {
	list, err := h.content.Projects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Project returns one project.
//
// @Summary      Get project
// @Tags         content
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ContentHandler) Project(c echo.Context) error {
	p, err := h.content.Project(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Reviews lists a project's reviews newest first.
//
// @Summary      List reviews
// @Tags         content
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Review
// @Router       /api/projects/{id}/reviews [get]
func (h *ContentHandler) Reviews(c echo.Context) error {
	list, err := h.content.Reviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// AddReview records a review by the caller.
//
// @Summary      Review a project
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Project id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id}/reviews [post]
func (h *ContentHandler) AddReview(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.content.AddReview(c.Request().Context(), actor, ports.ReviewInput{
		ProjectID: c.Param("id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// Services lists the catalog with each price converted to the visitor's
// currency.
//
// @Summary      List services
// @Tags         content
// @Produce      json
// @Success      200  {array}  localizedService
// @Router       /api/services [get]
func (h *ContentHandler) Services(c echo.Context) error {
	list, err := h.content.Services(c.Request().Context())
	if err != nil {
		return err
	}

	loc := h.locator.Detect(c.Request().Context(), c.RealIP())
	out := make([]localizedService, 0, len(list))
	for _, s := range list {
		out = append(out, localizedService{
			Service:        s,
			LocalizedPrice: currency.ConvertPrice(s.Price, loc.ExchangeRate, loc.CurrencySymbol),
			Currency:       loc.Currency,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// --- Admin ---

// SaveAbout replaces the about document.
//
// @Summary      Update about
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.AboutData  true  "About document"
// @Success      200   {object}  domain.AboutData
// @Router       /api/admin/about [put]
func (h *ContentHandler) SaveAbout(c echo.Context) error {
	var req domain.AboutData
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	about, err := h.content.SaveAbout(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

// CreateProject adds a project.
//
// @Summary      Create project
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Router       /api/admin/projects [post]
func (h *ContentHandler) CreateProject(c echo.Context) error {
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.content.SaveProject(c.Request().Context(), req.toProject(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProject replaces a project.
//
// @Summary      Update project
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Project id"
// @Param        body  body      projectRequest  true  "Project"
// @Success      200   {object}  domain.Project
// @Router       /api/admin/projects/{id} [put]
func (h *ContentHandler) UpdateProject(c echo.Context) error {
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.content.SaveProject(c.Request().Context(), req.toProject(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProject removes a project.
//
// @Summary      Delete project
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Router       /api/admin/projects/{id} [delete]
func (h *ContentHandler) DeleteProject(c echo.Context) error {
	if err := h.content.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateService adds a catalog entry.
//
// @Summary      Create service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.Service
// @Router       /api/admin/services [post]
func (h *ContentHandler) CreateService(c echo.Context) error {
	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.content.SaveService(c.Request().Context(), req.toService(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateService replaces a catalog entry.
//
// @Summary      Update service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Service id"
// @Param        body  body      serviceRequest  true  "Service"
// @Success      200   {object}  domain.Service
// @Router       /api/admin/services/{id} [put]
func (h *ContentHandler) UpdateService(c echo.Context) error {
	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.content.SaveService(c.Request().Context(), req.toService(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteService removes a catalog entry.
//
// @Summary      Delete service
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Service id"
// @Success      204
// @Router       /api/admin/services/{id} [delete]
func (h *ContentHandler) DeleteService(c echo.Context) error {
	if err := h.content.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r projectRequest) toProject(id string) domain.Project {
	return domain.Project{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		TechStack:   r.TechStack,
		LiveURL:     r.LiveURL,
		DemoURL:     r.DemoURL,
		ImageURL:    r.ImageURL,
	}
}

func (r serviceRequest) toService(id string) domain.Service {
	return domain.Service{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Icon:        r.Icon,
		Features:    r.Features,
	}
}
