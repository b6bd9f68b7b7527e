package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/advisor"
	"github.com/devport/portfolio/internal/api/metrics"
	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

// AccountHandler serves profile screens, identity administration, career
// advice and image uploads. The signer is optional; without it uploads
// answer 503.
type AccountHandler struct {
	users   ports.UserService
	advisor ports.CareerAdvisor
	signer  ports.UploadSigner
}

func NewAccountHandler(users ports.UserService, advice ports.CareerAdvisor, signer ports.UploadSigner) *AccountHandler {
	return &AccountHandler{users: users, advisor: advice, signer: signer}
}

// --- Request types ---

type profileRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"           validate:"omitempty,email"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	BscMajor       *string `json:"bsc_major,omitempty"`
	GraduationYear *string `json:"graduation_year,omitempty"`
	Password       string  `json:"password,omitempty"        validate:"omitempty,min=6"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

type adviceRequest struct {
	Skills []string `json:"skills" validate:"required,min=1"`
	Goal   string   `json:"goal"   validate:"required"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type uploadRequest struct {
	Kind        string `json:"kind"         validate:"required,oneof=avatars projects site"`
	ContentType string `json:"content_type" validate:"required"`
	Size        int64  `json:"size"         validate:"gt=0"`
}

// --- Profile ---

// Profile returns the caller's identity.
//
// @Summary      Own profile
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Router       /api/dashboard/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// UpdateProfile edits the caller's profile and refreshes the session copy of
// the identity so later requests see the change.
//
// @Summary      Edit own profile
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Identity
// @Failure      409   {object}  map[string]string
// @Router       /api/dashboard/profile [patch]
// @Router       /api/admin/profile [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := domain.IdentityPatch{
		Name:           req.Name,
		Email:          req.Email,
		AvatarURL:      req.AvatarURL,
		BscMajor:       req.BscMajor,
		GraduationYear: req.GraduationYear,
	}
	updated, err := h.users.UpdateProfile(c.Request().Context(), actor, ports.ProfileInput{
		Patch:       patch,
		NewPassword: req.Password,
	})
	if err != nil {
		return err
	}

	if s := middleware.CurrentSession(c); s != nil && !patch.Empty() {
		if _, err := s.UpdateIdentity(c.Request().Context(), patch); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, updated)
}

// --- Admin: identities ---

// Users lists every identity, newest first.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Identity
// @Router       /api/admin/users [get]
func (h *AccountHandler) Users(c echo.Context) error {
	list, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ChangeRole promotes or demotes an identity.
//
// @Summary      Change role
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Identity id"
// @Param        body  body  roleRequest  true  "New role"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id}/role [patch]
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}
	if err := h.users.ChangeRole(c.Request().Context(), actor, c.Param("id"), role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser purges an identity. Admins cannot delete themselves.
//
// @Summary      Delete user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Identity id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Advice & uploads ---

// Advice returns a short career plan. Generation failures answer with a
// fixed fallback text instead of an error.
//
// @Summary      Career advice
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Skills and goal"
// @Success      200   {object}  adviceResponse
// @Router       /api/dashboard/advice [post]
func (h *AccountHandler) Advice(c echo.Context) error {
	var req adviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	text := h.advisor.CareerAdvice(c.Request().Context(), req.Skills, req.Goal)
	result := "generated"
	if text == advisor.Fallback {
		result = "fallback"
	}
	metrics.AdviceRequestsTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusOK, adviceResponse{Advice: text})
}

// Upload issues a presigned PUT for an image owned by the caller.
//
// @Summary      Presign image upload
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadRequest  true  "Upload"
// @Success      201   {object}  ports.UploadTicket
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/uploads [post]
func (h *AccountHandler) Upload(c echo.Context) error {
	if h.signer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "uploads are not configured")
	}
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req uploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ticket, err := h.signer.PresignUpload(c.Request().Context(), actor.ID, req.Kind, req.ContentType, req.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ticket)
}
