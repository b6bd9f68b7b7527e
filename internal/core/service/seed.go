package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

// DefaultCDNBase hosts the placeholder images of the default content.
const DefaultCDNBase = "https://utfs.io/f/"

// SeedAdminID is the id of the built-in administrator.
const SeedAdminID = "admin-001"

// Seeder writes the default portfolio content into empty collections.
type Seeder struct {
	Identities ports.IdentityRepository
	About      ports.AboutRepository
	Projects   ports.ProjectRepository
	Services   ports.ServiceRepository

	CDNBase       string
	AdminPassword string
	Log           zerolog.Logger
	Now           func() time.Time
}

// Run is idempotent: existing documents are never overwritten.
func (s *Seeder) Run(ctx context.Context) error {
	if s.CDNBase == "" {
		s.CDNBase = DefaultCDNBase
	}
	if s.Now == nil {
		s.Now = time.Now
	}

	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.seedAbout(ctx); err != nil {
		return fmt.Errorf("seed about: %w", err)
	}
	if err := s.seedProjects(ctx); err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if err := s.seedServices(ctx); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	admin := DefaultAdmin(s.CDNBase)
	if s.AdminPassword == "" {
		s.Log.Warn().Msg("no admin password configured, seeded admin cannot log in")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin.PasswordHash = string(hash)
	}
	return s.Identities.Upsert(ctx, &admin)
}

func (s *Seeder) seedAbout(ctx context.Context) error {
	ok, err := s.About.Exists(ctx)
	if err != nil || ok {
		return err
	}
	about := DefaultAbout(s.CDNBase)
	s.Log.Info().Msg("seeding about document")
	return s.About.Save(ctx, &about)
}

func (s *Seeder) seedProjects(ctx context.Context) error {
	n, err := s.Projects.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	now := s.Now().UTC()
	for _, p := range DefaultProjects(s.CDNBase) {
		p.CreatedAt = now
		if err := s.Projects.Save(ctx, &p); err != nil {
			return err
		}
	}
	s.Log.Info().Msg("seeded default projects")
	return nil
}

func (s *Seeder) seedServices(ctx context.Context) error {
	n, err := s.Services.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, svc := range DefaultServices() {
		if err := s.Services.Save(ctx, &svc); err != nil {
			return err
		}
	}
	s.Log.Info().Msg("seeded default services")
	return nil
}

func DefaultAdmin(cdn string) domain.Identity {
	return domain.Identity{
		ID:             SeedAdminID,
		Name:           "John Developer",
		Email:          "admin@devport.com",
		Role:           domain.RoleAdmin,
		CreatedAt:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		AvatarURL:      cdn + "placeholder-user.png",
		BscMajor:       "Computer Science",
		GraduationYear: "2023",
	}
}

func DefaultAbout(cdn string) domain.AboutData {
	return domain.AboutData{
		ID:                domain.AboutDocumentID,
		Name:              "Eman Haque",
		Title:             "Laravel, WordPress & Full-Stack Developer",
		Overview:          "Expert web development specialized in Laravel framework, WordPress CMS, and high-performance custom applications.",
		Bio:               "I am a passionate B.Sc Graduate in Computer Science specialized in building high-conversion WordPress websites and scalable Laravel enterprise solutions.",
		Vision:            "Empowering businesses with modern, SEO-optimized, and lightning-fast web technologies.",
		Skills:            []string{"Laravel", "WordPress", "React", "Node.js", "PHP", "Custom Web Development"},
		Values:            []string{"SEO Optimization", "Clean Architecture", "Client Satisfaction"},
		ExperienceYears:   "2+",
		ProjectsCount:     "25+",
		Education:         "B.Sc in Computer Science & Engineering",
		Location:          "Dhaka, Bangladesh",
		Email:             "admin@devport.com",
		ImageURL:          cdn + "placeholder-profile.png",
		WorkspaceImageURL: cdn + "placeholder-workspace.png",
		HardwareImageURL:  cdn + "placeholder-hardware.png",
		FaviconURL:        cdn + "placeholder-favicon.png",
		SEOThumbnailURL:   cdn + "placeholder-project.png",
	}
}

func DefaultProjects(cdn string) []domain.Project {
	return []domain.Project{
		{
			ID:          "1",
			Title:       "E-Commerce Nexus",
			Description: "A full-featured online retail platform with secure payments and real-time inventory tracking.",
			TechStack:   []string{"React", "Node.js", "MongoDB", "Stripe"},
			LiveURL:     "https://example.com",
			DemoURL:     "https://github.com/example/ecommerce",
			ImageURL:    cdn + "placeholder-project.png",
		},
		{
			ID:          "2",
			Title:       "TaskFlow Pro",
			Description: "Productivity management tool featuring Kanban boards and team collaboration utilities.",
			TechStack:   []string{"TypeScript", "Firebase", "Tailwind", "D3.js"},
			LiveURL:     "https://example.com",
			DemoURL:     "https://github.com/example/taskflow",
			ImageURL:    cdn + "placeholder-project.png",
		},
	}
}

func DefaultServices() []domain.Service {
	return []domain.Service{
		{
			ID:          "wp-service",
			Title:       "WordPress Development",
			Description: "Custom theme and plugin development optimized for speed, security, and SEO.",
			Price:       "Starts at $299",
			Icon:        "🎨",
			Features:    []string{"Custom Themes", "Plugin Development", "SEO Optimization", "Speed Tuning"},
		},
		{
			ID:          "laravel-service",
			Title:       "Laravel Solutions",
			Description: "Scalable and secure enterprise-grade applications built with the Laravel framework.",
			Price:       "Starts at $499",
			Icon:        "💎",
			Features:    []string{"API Development", "Custom CRM/SaaS", "Database Design", "Secure Logic"},
		},
		{
			ID:          "web-dev-service",
			Title:       "Full Stack Development",
			Description: "Modern, responsive web applications using the latest JavaScript frameworks and Node.js.",
			Price:       "Starts at $399",
			Icon:        "🚀",
			Features:    []string{"React Applications", "Node.js Backend", "Responsive Design", "Cloud Deployment"},
		},
	}
}
