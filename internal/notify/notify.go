// Package notify delivers new-arrival alerts raised by the inbox watcher.
package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/inquirysync"
)

// LogNotifier writes alerts to the structured log.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, note inquirysync.Notification) {
	n.log.Info().
		Str("message_id", note.MessageID).
		Str("from", note.From).
		Str("email", note.Email).
		Msg("new contact message")
}

func (n *LogNotifier) PlayCue(context.Context) {
	n.log.Debug().Int("hz", chimeFrequency).Msg("chime")
}

// Counting increments counter for every alert.
type Counting struct {
	counter prometheus.Counter
}

func NewCounting(counter prometheus.Counter) *Counting {
	return &Counting{counter: counter}
}

func (c *Counting) Notify(context.Context, inquirysync.Notification) { c.counter.Inc() }

func (c *Counting) PlayCue(context.Context) {}

// Fanout forwards every alert to each notifier in order.
type Fanout []inquirysync.Notifier

func (f Fanout) Notify(ctx context.Context, note inquirysync.Notification) {
	for _, n := range f {
		n.Notify(ctx, note)
	}
}

func (f Fanout) PlayCue(ctx context.Context) {
	for _, n := range f {
		n.PlayCue(ctx)
	}
}
