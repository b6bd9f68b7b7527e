package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

type contentService struct {
	about    ports.AboutRepository
	projects ports.ProjectRepository
	services ports.ServiceRepository
	reviews  ports.ReviewRepository
	now      func() time.Time
}

// NewContentService returns a ContentService implementation.
func NewContentService(
	about ports.AboutRepository,
	projects ports.ProjectRepository,
	services ports.ServiceRepository,
	reviews ports.ReviewRepository,
) ports.ContentService {
	return &contentService{
		about:    about,
		projects: projects,
		services: services,
		reviews:  reviews,
		now:      time.Now,
	}
}

func (s *contentService) About(ctx context.Context) (*domain.AboutData, error) {
	return s.about.Get(ctx)
}

func (s *contentService) SaveAbout(ctx context.Context, about domain.AboutData) (*domain.AboutData, error) {
	about.ID = domain.AboutDocumentID
	if err := s.about.Save(ctx, &about); err != nil {
		return nil, err
	}
	return &about, nil
}

func (s *contentService) Projects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *contentService) Project(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// SaveProject creates the project when it has no id and replaces it otherwise.
// The creation time of an existing project is kept.
func (s *contentService) SaveProject(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: project title is required", domain.ErrInvalidInput)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = s.now().UTC()
	} else {
		existing, err := s.projects.FindByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = existing.CreatedAt
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if err := s.projects.Save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *contentService) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

func (s *contentService) Services(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

func (s *contentService) SaveService(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	if strings.TrimSpace(svc.Title) == "" {
		return nil, fmt.Errorf("%w: service title is required", domain.ErrInvalidInput)
	}
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if svc.Features == nil {
		svc.Features = []string{}
	}
	if err := s.services.Save(ctx, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *contentService) DeleteService(ctx context.Context, id string) error {
	return s.services.Delete(ctx, id)
}

func (s *contentService) Reviews(ctx context.Context, projectID string) ([]domain.Review, error) {
	return s.reviews.ListByProject(ctx, projectID)
}

func (s *contentService) AddReview(ctx context.Context, actor *domain.Identity, in ports.ReviewInput) (*domain.Review, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	comment := sanitizeText(in.Comment)
	if comment == "" {
		return nil, domain.ErrEmptyMessage
	}
	if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	rating := in.Rating
	switch {
	case rating < 1:
		rating = 1
	case rating > 5:
		rating = 5
	}

	r := &domain.Review{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.reviews.Add(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
