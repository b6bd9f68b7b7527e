package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

const scopeInquiry = "inquiry"

type inquiryService struct {
	inquiries ports.InquiryRepository
	messages  ports.InquiryMessageRepository
	services  ports.ServiceRepository
	dedup     ports.SubmissionGuard
	sink      ports.ActivitySink
	log       zerolog.Logger
	now       func() time.Time
}

// NewInquiryService returns an InquiryService implementation. dedup and sink
// may be nil.
func NewInquiryService(
	inquiries ports.InquiryRepository,
	messages ports.InquiryMessageRepository,
	services ports.ServiceRepository,
	dedup ports.SubmissionGuard,
	sink ports.ActivitySink,
	log zerolog.Logger,
) ports.InquiryService {
	return &inquiryService{
		inquiries: inquiries,
		messages:  messages,
		services:  services,
		dedup:     dedup,
		sink:      sink,
		log:       log,
		now:       time.Now,
	}
}

// Create records a service request with status pending. A logged-in client's
// name, email and id take precedence over the form values.
func (s *inquiryService) Create(ctx context.Context, in ports.CreateInquiryInput) (*domain.ServiceInquiry, error) {
	if in.Client != nil {
		in.ClientName = in.Client.Name
		in.ClientEmail = in.Client.Email
	}
	text := sanitizeText(in.Message)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	svc, err := s.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := claimSubmission(ctx, s.dedup, s.log, scopeInquiry, in.IdempotencyKey); err != nil {
		return nil, err
	}

	inq := &domain.ServiceInquiry{
		ID:           uuid.NewString(),
		ServiceID:    svc.ID,
		ServiceTitle: svc.Title,
		ClientName:   sanitizeText(in.ClientName),
		ClientEmail:  strings.ToLower(strings.TrimSpace(in.ClientEmail)),
		Message:      text,
		Status:       domain.StatusPending,
		CreatedAt:    s.now().UTC(),
	}
	if in.Client != nil {
		inq.ClientID = in.Client.ID
	}

	if err := s.inquiries.Create(ctx, inq); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	s.emit(ports.InquiryActivity{Kind: ports.ActivityCreated, InquiryID: inq.ID, ActorID: inq.ClientID, Status: inq.Status})
	return inq, nil
}

// List returns every inquiry to an admin and only their own to a client.
func (s *inquiryService) List(ctx context.Context, actor *domain.Identity) ([]domain.ServiceInquiry, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	clientID := ""
	if actor.Role != domain.RoleAdmin {
		clientID = actor.ID
	}
	list, err := s.inquiries.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	domain.SortInquiriesNewestFirst(list)
	return list, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	current, err := s.inquiries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, current.Status, status)
	}
	if err := s.inquiries.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.emit(ports.InquiryActivity{Kind: ports.ActivityStatusChanged, InquiryID: id, ActorRole: domain.RoleAdmin, Status: status})
	return nil
}

// Delete removes the inquiry and then its conversation. A failure to clean up
// messages is logged and does not undo the deletion.
func (s *inquiryService) Delete(ctx context.Context, id string) error {
	if err := s.inquiries.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.messages.DeleteByInquiry(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("inquiry_id", id).Msg("inquiry messages cleanup failed")
	}

	s.emit(ports.InquiryActivity{Kind: ports.ActivityDeleted, InquiryID: id, ActorRole: domain.RoleAdmin})
	return nil
}

func (s *inquiryService) Messages(ctx context.Context, actor *domain.Identity, inquiryID string) ([]domain.InquiryMessage, error) {
	if _, err := s.authorize(ctx, actor, inquiryID); err != nil {
		return nil, err
	}
	list, err := s.messages.ListByInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	domain.SortMessagesOldestFirst(list)
	return list, nil
}

func (s *inquiryService) PostMessage(ctx context.Context, actor *domain.Identity, inquiryID, text string) (*domain.InquiryMessage, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	clean := sanitizeText(text)
	if clean == "" {
		return nil, domain.ErrEmptyMessage
	}
	if _, err := s.authorize(ctx, actor, inquiryID); err != nil {
		return nil, err
	}

	msg := &domain.InquiryMessage{
		ID:         uuid.NewString(),
		InquiryID:  inquiryID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		SenderRole: actor.Role,
		Text:       clean,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	s.emit(ports.InquiryActivity{Kind: ports.ActivityMessage, InquiryID: inquiryID, ActorID: actor.ID, ActorRole: actor.Role})
	return msg, nil
}

// authorize loads the inquiry and checks that a non-admin actor owns it.
func (s *inquiryService) authorize(ctx context.Context, actor *domain.Identity, inquiryID string) (*domain.ServiceInquiry, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	inq, err := s.inquiries.FindByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && inq.ClientID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return inq, nil
}

func (s *inquiryService) emit(a ports.InquiryActivity) {
	if s.sink == nil {
		return
	}
	a.At = s.now().UTC()
	s.sink.Enqueue(a)
}

// claimSubmission rejects a repeated idempotency key. A store failure is
// logged and the submission goes through.
func claimSubmission(ctx context.Context, guard ports.SubmissionGuard, log zerolog.Logger, scope, key string) error {
	if guard == nil || key == "" {
		return nil
	}
	ok, err := guard.Claim(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("idempotency check failed, accepting submission")
		return nil
	}
	if !ok {
		return domain.ErrDuplicateSubmission
	}
	return nil
}
