// Package inquirysync keeps a client's view of service inquiries, their
// conversations and the contact inbox close to the store by polling.
//
// Every screen owns its pollers: they start on Mount or Open and stop on
// Close or Unmount. Results that arrive for a screen or conversation that is
// no longer current are dropped. Poll failures are swallowed and retried on
// the next tick; failures of explicit user actions are surfaced through
// Notices and leave the local state as it was.
package inquirysync

import (
	"context"
	"time"

	"github.com/devport/portfolio/internal/core/domain"
)

const (
	AdminListInterval  = 5 * time.Second
	ClientListInterval = 10 * time.Second
	MessageInterval    = 3 * time.Second
	InboxInterval      = 5 * time.Second
	NotificationTTL    = 10 * time.Second
)

// Store is the remote inquiry store as seen by one client.
type Store interface {
	// ListInquiries returns inquiries; a non-empty clientID restricts them to
	// one client.
	ListInquiries(ctx context.Context, clientID string) ([]domain.ServiceInquiry, error)
	ListMessages(ctx context.Context, inquiryID string) ([]domain.InquiryMessage, error)
	AppendMessage(ctx context.Context, msg domain.InquiryMessage) error
	UpdateStatus(ctx context.Context, inquiryID string, status domain.InquiryStatus) error
	DeleteInquiry(ctx context.Context, inquiryID string) error
}

// InboxStore is the contact-message store.
type InboxStore interface {
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error
}

// Notices surfaces failed user actions.
type Notices interface {
	Failure(action string, err error)
}

// NoticeFunc adapts a function to Notices.
type NoticeFunc func(action string, err error)

func (f NoticeFunc) Failure(action string, err error) { f(action, err) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always confirms every prompt.
var Always = ConfirmFunc(func(string) bool { return true })

type discardNotices struct{}

func (discardNotices) Failure(string, error) {}

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
