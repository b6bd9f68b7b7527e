package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/ports"
	"github.com/devport/portfolio/internal/inquirysync"
)

// Pub/sub channels.
const (
	ChannelInbox    = "devport:inbox"
	ChannelActivity = "devport:inquiry_activity"
)

// Publisher pushes alerts and inquiry activity to Redis pub/sub so that
// other instances and dashboards can react.
type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPublisher(client *redis.Client, log zerolog.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// Notify publishes a new-arrival alert. Failures are logged.
func (p *Publisher) Notify(ctx context.Context, note inquirysync.Notification) {
	if err := p.publish(ctx, ChannelInbox, note); err != nil {
		p.log.Warn().Err(err).Str("message_id", note.MessageID).Msg("publish inbox notification")
	}
}

func (p *Publisher) PlayCue(context.Context) {}

// PublishActivity publishes one inquiry activity record.
func (p *Publisher) PublishActivity(ctx context.Context, a ports.InquiryActivity) error {
	return p.publish(ctx, ChannelActivity, a)
}

func (p *Publisher) publish(ctx context.Context, channel string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", channel, err)
	}
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}
