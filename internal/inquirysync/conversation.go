package inquirysync

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/poll"
)

// ConversationConfig configures one inquiry screen.
type ConversationConfig struct {
	// ClientID scopes the screen to one client. Empty means the admin view
	// over all inquiries.
	ClientID        string
	ListInterval    time.Duration
	MessageInterval time.Duration
	Notices         Notices
	Log             zerolog.Logger
	Now             func() time.Time
	NewID           func() string
}

func (c *ConversationConfig) defaults() {
	if c.ListInterval <= 0 {
		c.ListInterval = AdminListInterval
		if c.ClientID != "" {
			c.ListInterval = ClientListInterval
		}
	}
	if c.MessageInterval <= 0 {
		c.MessageInterval = MessageInterval
	}
	if c.Notices == nil {
		c.Notices = discardNotices{}
	}
	if c.Now == nil {
		c.Now = func() time.Time { return time.Now().UTC() }
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
}

// Snapshot is a copy of a screen's visible state.
type Snapshot struct {
	Inquiries []domain.ServiceInquiry
	Selected  *domain.ServiceInquiry
	Messages  []domain.InquiryMessage
	Draft     string
}

// Conversation is the state of an inquiry screen: the inquiry list, the
// selected inquiry with its messages and the unsent draft.
type Conversation struct {
	store Store
	cfg   ConversationConfig

	mu        sync.Mutex
	inquiries []domain.ServiceInquiry
	selected  *domain.ServiceInquiry
	messages  []domain.InquiryMessage
	draft     string

	listPoll *poll.Handle
	msgPoll  *poll.Handle
	// listGen and msgGen advance whenever the screen or the open
	// conversation changes; fetches started under an older generation are
	// dropped.
	listGen uint64
	msgGen  uint64
}

func NewConversation(store Store, cfg ConversationConfig) *Conversation {
	cfg.defaults()
	return &Conversation{store: store, cfg: cfg}
}

// Mount starts polling the inquiry list. Mounting twice is a no-op.
func (c *Conversation) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listPoll != nil {
		return
	}
	c.listPoll = poll.Start(ctx, c.cfg.ListInterval, c.RefreshInquiryList, poll.WithErrorHook(c.pollFailed("inquiry list")))
}

// Unmount stops every poller of the screen and drops late results.
func (c *Conversation) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listPoll != nil {
		c.listPoll.Stop()
		c.listPoll = nil
	}
	c.listGen++
	c.closeLocked()
}

// RefreshInquiryList replaces the local list, newest first, and refreshes
// the selected inquiry's status from it.
func (c *Conversation) RefreshInquiryList(ctx context.Context) error {
	c.mu.Lock()
	gen := c.listGen
	c.mu.Unlock()

	list, err := c.store.ListInquiries(ctx, c.cfg.ClientID)
	if err != nil {
		return fmt.Errorf("list inquiries: %w", err)
	}
	domain.SortInquiriesNewestFirst(list)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.listGen {
		return nil
	}
	c.inquiries = list
	if c.selected != nil {
		for _, inq := range list {
			if inq.ID == c.selected.ID {
				c.selected.Status = inq.Status
				break
			}
		}
	}
	return nil
}

// Open selects an inquiry from the list and starts polling its messages.
// The previous conversation's poller is stopped first. An inquiry missing
// from the local list, as with a deep link opened before the first poll
// completed, triggers one list refresh before giving up.
func (c *Conversation) Open(ctx context.Context, inquiryID string) error {
	c.mu.Lock()
	known := c.findLocked(inquiryID) != nil
	c.mu.Unlock()

	if !known {
		if err := c.RefreshInquiryList(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	found := c.findLocked(inquiryID)
	if found == nil {
		return domain.ErrInquiryNotFound
	}

	c.closeLocked()
	c.selected = found
	c.msgPoll = poll.Start(ctx, c.cfg.MessageInterval, func(ctx context.Context) error {
		return c.RefreshMessages(ctx, inquiryID)
	}, poll.WithErrorHook(c.pollFailed("messages")))
	return nil
}

func (c *Conversation) findLocked(inquiryID string) *domain.ServiceInquiry {
	for i := range c.inquiries {
		if c.inquiries[i].ID == inquiryID {
			inq := c.inquiries[i]
			return &inq
		}
	}
	return nil
}

// Close stops the open conversation and clears it from view.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Conversation) closeLocked() {
	if c.msgPoll != nil {
		c.msgPoll.Stop()
		c.msgPoll = nil
	}
	c.msgGen++
	c.selected = nil
	c.messages = nil
}

// RefreshMessages fetches the conversation of inquiryID. The local messages
// are replaced, oldest first, only when the count changed and only while
// that conversation is still open.
func (c *Conversation) RefreshMessages(ctx context.Context, inquiryID string) error {
	c.mu.Lock()
	gen := c.msgGen
	c.mu.Unlock()

	msgs, err := c.store.ListMessages(ctx, inquiryID)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	domain.SortMessagesOldestFirst(msgs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.msgGen || c.selected == nil || c.selected.ID != inquiryID {
		return nil
	}
	if len(msgs) != len(c.messages) {
		c.messages = msgs
	}
	return nil
}

// SetDraft sets the compose field. Polling never touches it.
func (c *Conversation) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Conversation) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SendMessage appends a reply from sender to inquiryID. On success the draft
// is cleared and the conversation refreshed at once; on failure the draft is
// kept and a notice is raised.
func (c *Conversation) SendMessage(ctx context.Context, inquiryID string, sender domain.Identity, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}

	msg := domain.InquiryMessage{
		ID:         c.cfg.NewID(),
		InquiryID:  inquiryID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Text:       text,
		CreatedAt:  c.cfg.Now(),
	}
	if err := c.store.AppendMessage(ctx, msg); err != nil {
		c.cfg.Notices.Failure("send message", err)
		return fmt.Errorf("send message: %w", err)
	}

	c.SetDraft("")
	if err := c.RefreshMessages(ctx, inquiryID); err != nil {
		c.cfg.Log.Debug().Err(err).Str("inquiry_id", inquiryID).Msg("refresh after send failed")
	}
	return nil
}

// UpdateStatus persists a new status and reflects it in the selected inquiry
// and the list without waiting for the next poll.
func (c *Conversation) UpdateStatus(ctx context.Context, inquiryID string, status domain.InquiryStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := c.store.UpdateStatus(ctx, inquiryID, status); err != nil {
		c.cfg.Notices.Failure("update status", err)
		return fmt.Errorf("update status: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected != nil && c.selected.ID == inquiryID {
		c.selected.Status = status
	}
	for i := range c.inquiries {
		if c.inquiries[i].ID == inquiryID {
			c.inquiries[i].Status = status
		}
	}
	return nil
}

// DeleteInquiry removes an inquiry after confirmation. A declined prompt
// makes no store call. Deleting the open inquiry closes its conversation.
func (c *Conversation) DeleteInquiry(ctx context.Context, inquiryID string, confirm Confirmer) (bool, error) {
	if !confirmed(confirm, "Delete this inquiry and its conversation?") {
		return false, nil
	}
	if err := c.store.DeleteInquiry(ctx, inquiryID); err != nil {
		c.cfg.Notices.Failure("delete inquiry", err)
		return false, fmt.Errorf("delete inquiry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.inquiries[:0]
	for _, inq := range c.inquiries {
		if inq.ID != inquiryID {
			kept = append(kept, inq)
		}
	}
	c.inquiries = kept
	if c.selected != nil && c.selected.ID == inquiryID {
		c.closeLocked()
	}
	return true, nil
}

// Snapshot returns a copy of the visible state.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Inquiries: append([]domain.ServiceInquiry(nil), c.inquiries...),
		Messages:  append([]domain.InquiryMessage(nil), c.messages...),
		Draft:     c.draft,
	}
	if c.selected != nil {
		sel := *c.selected
		s.Selected = &sel
	}
	return s
}

func (c *Conversation) pollFailed(what string) func(error) {
	return func(err error) {
		c.cfg.Log.Debug().Err(err).Str("poll", what).Msg("poll failed, retrying on next tick")
	}
}
