package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/ports"
)

// ActivityPublisher forwards activity to other instances.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, a ports.InquiryActivity) error
}

type activityService struct {
	publisher ActivityPublisher
	log       zerolog.Logger
}

// NewActivityService returns the processor run by the activity dispatcher.
// publisher may be nil, in which case activity is only logged.
func NewActivityService(publisher ActivityPublisher, log zerolog.Logger) ports.ActivityProcessor {
	return &activityService{publisher: publisher, log: log}
}

func (s *activityService) Process(ctx context.Context, a ports.InquiryActivity) error {
	s.log.Info().
		Str("kind", string(a.Kind)).
		Str("inquiry_id", a.InquiryID).
		Str("actor_id", a.ActorID).
		Str("status", string(a.Status)).
		Msg("inquiry activity")

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishActivity(ctx, a); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}
