package ports

import (
	"context"
	"time"

	"github.com/devport/portfolio/internal/core/domain"
)

// InquiryRepository defines persistence for service inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.ServiceInquiry) error
	FindByID(ctx context.Context, id string) (*domain.ServiceInquiry, error)
	// List returns inquiries newest first. A non-empty clientID restricts the
	// result to that client's inquiries.
	List(ctx context.Context, clientID string) ([]domain.ServiceInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
	Delete(ctx context.Context, id string) error
}

// InquiryMessageRepository defines persistence for conversation messages.
type InquiryMessageRepository interface {
	Append(ctx context.Context, msg *domain.InquiryMessage) error
	// ListByInquiry returns the conversation oldest first.
	ListByInquiry(ctx context.Context, inquiryID string) ([]domain.InquiryMessage, error)
	DeleteByInquiry(ctx context.Context, inquiryID string) error
}

// CreateInquiryInput is a visitor's service request.
type CreateInquiryInput struct {
	ServiceID      string
	ClientName     string
	ClientEmail    string
	Message        string
	IdempotencyKey string
	// Client is the logged-in requester, if any. Its name, email and id
	// fill in the inquiry.
	Client *domain.Identity
}

// InquiryService manages inquiries and their conversations.
type InquiryService interface {
	Create(ctx context.Context, in CreateInquiryInput) (*domain.ServiceInquiry, error)
	List(ctx context.Context, actor *domain.Identity) ([]domain.ServiceInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, actor *domain.Identity, inquiryID string) ([]domain.InquiryMessage, error)
	PostMessage(ctx context.Context, actor *domain.Identity, inquiryID, text string) (*domain.InquiryMessage, error)
}

// ActivityKind names what happened to an inquiry.
type ActivityKind string

const (
	ActivityCreated       ActivityKind = "created"
	ActivityMessage       ActivityKind = "message"
	ActivityStatusChanged ActivityKind = "status_changed"
	ActivityDeleted       ActivityKind = "deleted"
)

// InquiryActivity is fanned out after an inquiry changes.
type InquiryActivity struct {
	Kind      ActivityKind         `json:"kind"`
	InquiryID string               `json:"inquiry_id"`
	ActorID   string               `json:"actor_id,omitempty"`
	ActorRole domain.Role          `json:"actor_role,omitempty"`
	Status    domain.InquiryStatus `json:"status,omitempty"`
	At        time.Time            `json:"at"`
}

// ActivitySink accepts inquiry activity. Enqueue must not block callers for
// long.
type ActivitySink interface {
	Enqueue(activity InquiryActivity)
}

// ActivityProcessor handles one activity record.
type ActivityProcessor interface {
	Process(ctx context.Context, activity InquiryActivity) error
}

// SubmissionGuard claims idempotency keys for public submissions.
type SubmissionGuard interface {
	// Claim returns false when the key was already claimed.
	Claim(ctx context.Context, scope, key string) (bool, error)
}
