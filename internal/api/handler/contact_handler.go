package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/core/ports"
	"github.com/devport/portfolio/internal/inquirysync"
	"github.com/devport/portfolio/internal/notify"
)

// InboxView is the admin's live view of the contact inbox.
type InboxView interface {
	Current() (inquirysync.Notification, bool)
	Unread() int
	MarkRead()
	Dismiss()
	DeleteMessage(ctx context.Context, id string, confirm inquirysync.Confirmer) (bool, error)
}

// ContactHandler handles the contact form and the admin inbox. The inbox
// view is optional; without it notifications are always empty.
type ContactHandler struct {
	contacts ports.ContactService
	inbox    InboxView
}

func NewContactHandler(contacts ports.ContactService, inbox InboxView) *ContactHandler {
	return &ContactHandler{contacts: contacts, inbox: inbox}
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type notificationsResponse struct {
	Notification *inquirysync.Notification `json:"notification,omitempty"`
	Unread       int                       `json:"unread"`
}

// Submit stores a contact-form message.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string          false  "Deduplicates retried submissions"
// @Param        body             body      contactRequest  true   "Message"
// @Success      201              {object}  domain.ContactMessage
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      429              {object}  map[string]string
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	key := idempotencyKey(c)
	msg, err := h.contacts.Submit(c.Request().Context(), ports.ContactInput{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		IdempotencyKey: key,
	})
	recordDedup("contact", key, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List returns contact messages newest first.
//
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ContactMessage
// @Router       /api/admin/messages [get]
func (h *ContactHandler) List(c echo.Context) error {
	list, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Delete removes a contact message. With a live inbox the message also
// leaves the inbox view.
//
// @Summary      Delete contact message
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/messages/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	if h.inbox != nil {
		if _, err := h.inbox.DeleteMessage(ctx, c.Param("id"), inquirysync.Always); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
	if err := h.contacts.Delete(ctx, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Notifications returns the visible new-message alert and the unread count.
//
// @Summary      Inbox notifications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationsResponse
// @Router       /api/admin/notifications [get]
func (h *ContactHandler) Notifications(c echo.Context) error {
	var resp notificationsResponse
	if h.inbox != nil {
		if note, ok := h.inbox.Current(); ok {
			resp.Notification = &note
		}
		resp.Unread = h.inbox.Unread()
	}
	return c.JSON(http.StatusOK, resp)
}

// MarkRead clears the unread badge and hides the visible alert.
//
// @Summary      Mark inbox read
// @Tags         admin
// @Security     BearerAuth
// @Success      204
// @Router       /api/admin/notifications/read [post]
func (h *ContactHandler) MarkRead(c echo.Context) error {
	if h.inbox != nil {
		h.inbox.MarkRead()
		h.inbox.Dismiss()
	}
	return c.NoContent(http.StatusNoContent)
}

// Chime serves the audio cue that accompanies a new-message alert.
//
// @Summary      Notification cue
// @Tags         admin
// @Produce      audio/wav
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/admin/notifications/chime.wav [get]
func (h *ContactHandler) Chime(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "audio/wav", notify.Chime())
}
