package inquirysync

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/poll"
)

// Notification announces a newly arrived contact message.
type Notification struct {
	MessageID string    `json:"message_id"`
	From      string    `json:"from"`
	Email     string    `json:"email"`
	Preview   string    `json:"preview"`
	At        time.Time `json:"at"`
}

// Notifier delivers new-arrival alerts.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
	// PlayCue emits the short audio cue that goes with a notification.
	PlayCue(ctx context.Context)
}

type InboxConfig struct {
	Interval        time.Duration
	NotificationTTL time.Duration
	Notifier        Notifier
	Notices         Notices
	Log             zerolog.Logger
}

// Inbox polls contact messages and raises one notification each time the
// newest message changes. Nothing is raised until a non-empty fetch has
// recorded a newest id, so neither the first fetch nor the first message
// into an empty inbox notifies.
type Inbox struct {
	store InboxStore
	cfg   InboxConfig

	mu       sync.Mutex
	messages []domain.ContactMessage
	known    map[string]struct{}
	lastSeen string
	unread   int
	current  *Notification
	noteSeq  uint64
	dismiss  *time.Timer
	poller   *poll.Handle
	gen      uint64
}

func NewInbox(store InboxStore, cfg InboxConfig) *Inbox {
	if cfg.Interval <= 0 {
		cfg.Interval = InboxInterval
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = NotificationTTL
	}
	if cfg.Notices == nil {
		cfg.Notices = discardNotices{}
	}
	return &Inbox{store: store, cfg: cfg, known: make(map[string]struct{})}
}

// Mount starts polling. Mounting twice is a no-op.
func (b *Inbox) Mount(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.poller != nil {
		return
	}
	b.poller = poll.Start(ctx, b.cfg.Interval, b.Refresh, poll.WithErrorHook(func(err error) {
		b.cfg.Log.Debug().Err(err).Str("poll", "inbox").Msg("poll failed, retrying on next tick")
	}))
}

// Unmount stops polling and any pending auto-dismiss.
func (b *Inbox) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.poller != nil {
		b.poller.Stop()
		b.poller = nil
	}
	if b.dismiss != nil {
		b.dismiss.Stop()
		b.dismiss = nil
	}
	b.gen++
}

// Refresh fetches the inbox once.
func (b *Inbox) Refresh(ctx context.Context) error {
	b.mu.Lock()
	gen := b.gen
	b.mu.Unlock()

	list, err := b.store.ListContactMessages(ctx)
	if err != nil {
		return fmt.Errorf("list contact messages: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })

	note, ok := b.apply(gen, list)
	if ok && b.cfg.Notifier != nil {
		b.cfg.Notifier.Notify(ctx, note)
		b.cfg.Notifier.PlayCue(ctx)
	}
	return nil
}

func (b *Inbox) apply(gen uint64, list []domain.ContactMessage) (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		return Notification{}, false
	}

	newest := ""
	if len(list) > 0 {
		newest = list[0].ID
	}

	fresh := 0
	for _, m := range list {
		if _, ok := b.known[m.ID]; !ok {
			fresh++
			b.known[m.ID] = struct{}{}
		}
	}
	b.messages = list

	// An empty inbox keeps the last seen id.
	if newest == "" {
		return Notification{}, false
	}
	last := b.lastSeen
	b.lastSeen = newest
	if last == "" || newest == last || fresh == 0 {
		return Notification{}, false
	}

	b.unread += fresh

	top := list[0]
	note := Notification{
		MessageID: top.ID,
		From:      top.Name,
		Email:     top.Email,
		Preview:   preview(top.Message, 80),
		At:        top.Date,
	}
	b.current = &note
	b.noteSeq++
	seq := b.noteSeq
	if b.dismiss != nil {
		b.dismiss.Stop()
	}
	b.dismiss = time.AfterFunc(b.cfg.NotificationTTL, func() { b.expire(seq) })
	return note, true
}

func (b *Inbox) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.noteSeq == seq {
		b.current = nil
	}
}

// Current returns the visible notification, if any.
func (b *Inbox) Current() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notification{}, false
	}
	return *b.current, true
}

// Dismiss hides the visible notification.
func (b *Inbox) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
	b.noteSeq++
}

// Messages returns the inbox, newest first.
func (b *Inbox) Messages() []domain.ContactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.ContactMessage(nil), b.messages...)
}

// Unread is the number of messages that arrived since the last MarkRead.
func (b *Inbox) Unread() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unread
}

func (b *Inbox) MarkRead() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unread = 0
}

// DeleteMessage removes a contact message after confirmation.
func (b *Inbox) DeleteMessage(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !confirmed(confirm, "Delete this message?") {
		return false, nil
	}
	if err := b.store.DeleteContactMessage(ctx, id); err != nil {
		b.cfg.Notices.Failure("delete message", err)
		return false, fmt.Errorf("delete message: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	kept := make([]domain.ContactMessage, 0, len(b.messages))
	for _, m := range b.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	b.messages = kept
	if len(kept) > 0 {
		b.lastSeen = kept[0].ID
	} else {
		b.lastSeen = ""
	}
	return true, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
