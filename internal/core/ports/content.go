package ports

import (
	"context"
	"time"

	"github.com/devport/portfolio/internal/core/domain"
)

type AboutRepository interface {
	Get(ctx context.Context) (*domain.AboutData, error)
	Save(ctx context.Context, about *domain.AboutData) error
	// Exists reports whether the about document is present.
	Exists(ctx context.Context) (bool, error)
}

type ProjectRepository interface {
	// List returns projects newest first.
	List(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Save(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	Save(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ReviewRepository interface {
	// ListByProject returns a project's reviews newest first.
	ListByProject(ctx context.Context, projectID string) ([]domain.Review, error)
	Add(ctx context.Context, review *domain.Review) error
}

type ContactRepository interface {
	Save(ctx context.Context, msg *domain.ContactMessage) error
	// List returns contact messages newest first.
	List(ctx context.Context) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ReviewInput is a review left by an authenticated identity.
type ReviewInput struct {
	ProjectID string
	Rating    int
	Comment   string
}

// ContentService manages the public portfolio content.
type ContentService interface {
	About(ctx context.Context) (*domain.AboutData, error)
	SaveAbout(ctx context.Context, about domain.AboutData) (*domain.AboutData, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	SaveProject(ctx context.Context, project domain.Project) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Services(ctx context.Context) ([]domain.Service, error)
	SaveService(ctx context.Context, service domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error
	Reviews(ctx context.Context, projectID string) ([]domain.Review, error)
	AddReview(ctx context.Context, actor *domain.Identity, in ReviewInput) (*domain.Review, error)
}

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name           string
	Email          string
	Message        string
	IdempotencyKey string
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// UploadTicket tells a client where to PUT a file and where it will be
// served from afterwards.
type UploadTicket struct {
	UploadURL      string            `json:"upload_url"`
	ObjectKey      string            `json:"object_key"`
	PublicURL      string            `json:"public_url"`
	Expires        time.Duration     `json:"expires"`
	RequiredHeader map[string]string `json:"required_header"`
}

// UploadSigner issues presigned uploads for images.
type UploadSigner interface {
	PresignUpload(ctx context.Context, ownerID, kind, contentType string, size int64) (*UploadTicket, error)
}

// CareerAdvisor generates a short plan for a graduate.
type CareerAdvisor interface {
	CareerAdvice(ctx context.Context, skills []string, goal string) string
}
