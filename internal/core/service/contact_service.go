package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

const scopeContact = "contact"

type contactService struct {
	repo  ports.ContactRepository
	dedup ports.SubmissionGuard
	log   zerolog.Logger
	now   func() time.Time
}

// NewContactService returns a ContactService implementation. dedup may be nil.
func NewContactService(repo ports.ContactRepository, dedup ports.SubmissionGuard, log zerolog.Logger) ports.ContactService {
	return &contactService{repo: repo, dedup: dedup, log: log, now: time.Now}
}

func (s *contactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	text := sanitizeText(in.Message)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if err := claimSubmission(ctx, s.dedup, s.log, scopeContact, in.IdempotencyKey); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    sanitizeText(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Message: text,
		Date:    s.now().UTC(),
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *contactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
