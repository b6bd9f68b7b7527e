package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devport/portfolio/internal/api/metrics"
	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

// InquiryHandler handles service inquiries and their conversations for both
// the client dashboard and the admin panel.
type InquiryHandler struct {
	service ports.InquiryService
}

func NewInquiryHandler(service ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

// --- Request types ---

type createInquiryRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
	Message     string `json:"message"      validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted in-progress completed rejected"`
}

type postMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create records a service request. Anonymous visitors must give a name and
// email; a logged-in client's own details are used instead.
//
// @Summary      Request a service
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id               path      string                true   "Service id"
// @Param        Idempotency-Key  header    string                false  "Deduplicates retried submissions"
// @Param        body             body      createInquiryRequest  true   "Inquiry"
// @Success      201              {object}  domain.ServiceInquiry
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /api/services/{id}/inquiries [post]
func (h *InquiryHandler) Create(c echo.Context) error {
	var req createInquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client := middleware.CurrentIdentity(c)
	if client == nil && (req.ClientName == "" || req.ClientEmail == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "client_name and client_email are required")
	}

	key := idempotencyKey(c)
	inq, err := h.service.Create(c.Request().Context(), ports.CreateInquiryInput{
		ServiceID:      c.Param("id"),
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		Message:        req.Message,
		IdempotencyKey: key,
		Client:         client,
	})
	recordDedup("inquiry", key, err)
	if err != nil {
		return err
	}

	metrics.InquiriesCreatedTotal.WithLabelValues(inq.ServiceID).Inc()
	return c.JSON(http.StatusCreated, inq)
}

// List returns the caller's inquiries; admins see every inquiry and may
// narrow the list with ?client_id=.
//
// @Summary      List inquiries
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query  string  false  "Admin only: restrict to one client"
// @Success      200  {array}  domain.ServiceInquiry
// @Router       /api/dashboard/orders [get]
// @Router       /api/admin/inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	if clientID := c.QueryParam("client_id"); clientID != "" && actor.Role == domain.RoleAdmin {
		filtered := make([]domain.ServiceInquiry, 0, len(list))
		for _, inq := range list {
			if inq.ClientID == clientID {
				filtered = append(filtered, inq)
			}
		}
		list = filtered
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateStatus changes an inquiry's status.
//
// @Summary      Update inquiry status
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Inquiry id"
// @Param        body  body  updateStatusRequest  true  "New status"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/inquiries/{id}/status [patch]
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseInquiryStatus(req.Status)
	if err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an inquiry and its conversation.
//
// @Summary      Delete inquiry
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Inquiry id"
// @Success      204
// @Router       /api/admin/inquiries/{id} [delete]
func (h *InquiryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Messages returns an inquiry's conversation oldest first.
//
// @Summary      List conversation
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Inquiry id"
// @Success      200  {array}  domain.InquiryMessage
// @Failure      403  {object}  map[string]string
// @Router       /api/dashboard/orders/{id}/messages [get]
// @Router       /api/admin/inquiries/{id}/messages [get]
func (h *InquiryHandler) Messages(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	list, err := h.service.Messages(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// PostMessage appends to an inquiry's conversation as the caller.
//
// @Summary      Send message
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Inquiry id"
// @Param        body  body      postMessageRequest  true  "Message"
// @Success      201   {object}  domain.InquiryMessage
// @Failure      403   {object}  map[string]string
// @Router       /api/dashboard/orders/{id}/messages [post]
// @Router       /api/admin/inquiries/{id}/messages [post]
func (h *InquiryHandler) PostMessage(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req postMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.service.PostMessage(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	metrics.InquiryMessagesTotal.WithLabelValues(string(msg.SenderRole)).Inc()
	return c.JSON(http.StatusCreated, msg)
}

// recordDedup counts idempotency checks for submissions that carried a key.
func recordDedup(scope, key string, err error) {
	if key == "" {
		return
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateSubmission):
		metrics.SubmissionDedupTotal.WithLabelValues(scope, "hit").Inc()
	case err == nil:
		metrics.SubmissionDedupTotal.WithLabelValues(scope, "miss").Inc()
	}
}
