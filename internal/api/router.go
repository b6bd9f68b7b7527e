package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/devport/portfolio/internal/api/handler"
	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Navigation *handler.NavigationHandler
	Content    *handler.ContentHandler
	Inquiries  *handler.InquiryHandler
	Contact    *handler.ContactHandler
	Accounts   *handler.AccountHandler
	Health     *handler.HealthHandler
	Readiness  *handler.HealthDependenciesHandler
}

// RouterConfig carries what the router needs besides handlers.
type RouterConfig struct {
	JWTSecret string
	Sessions  middleware.SessionOpener
	// Identities is consulted on every authenticated request for the
	// current role.
	Identities middleware.IdentityLookup
	// Limiter throttles public submissions. Nil disables throttling.
	Limiter *middleware.RateLimiter
	// Registerer receives the request metrics. Defaults to the global
	// registry, which is also what /metrics serves.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devport",
		Registerer: cfg.Registerer,
	}))
	e.Use(middleware.Session(cfg.JWTSecret, cfg.Sessions, cfg.Identities, cfg.Log))

	// --- Ops ---
	e.GET("/health", h.Health.Liveness)
	e.GET("/health/ready", h.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	submit := []echo.MiddlewareFunc{}
	if cfg.Limiter != nil {
		submit = append(submit, cfg.Limiter.Middleware())
	}

	// --- Public ---
	pub := e.Group("/api")
	pub.POST("/auth/register", h.Auth.Register, submit...)
	pub.POST("/auth/login", h.Auth.Login, submit...)
	pub.POST("/auth/logout", h.Auth.Logout)
	pub.GET("/session", h.Auth.Session)
	pub.GET("/navigate", h.Navigation.Navigate)
	pub.GET("/location", h.Navigation.Location)
	pub.GET("/about", h.Content.About)
	pub.GET("/projects", h.Content.Projects)
	pub.GET("/projects/:id", h.Content.Project)
	pub.GET("/projects/:id/reviews", h.Content.Reviews)
	pub.GET("/services", h.Content.Services)
	pub.POST("/services/:id/inquiries", h.Inquiries.Create, submit...)
	pub.POST("/contact", h.Contact.Submit, submit...)

	// --- Any identity ---
	anyIdentity := middleware.Guard("")
	pub.POST("/projects/:id/reviews", h.Content.AddReview, anyIdentity)
	pub.POST("/uploads", h.Accounts.Upload, anyIdentity)

	dash := e.Group("/api/dashboard", anyIdentity)
	dash.GET("/profile", h.Accounts.Profile)
	dash.PATCH("/profile", h.Accounts.UpdateProfile)
	dash.GET("/orders", h.Inquiries.List)
	dash.GET("/orders/:id/messages", h.Inquiries.Messages)
	dash.POST("/orders/:id/messages", h.Inquiries.PostMessage)
	dash.POST("/advice", h.Accounts.Advice)

	// --- Admin ---
	admin := e.Group("/api/admin", middleware.Guard(domain.RoleAdmin))
	admin.GET("/users", h.Accounts.Users)
	admin.PATCH("/users/:id/role", h.Accounts.ChangeRole)
	admin.DELETE("/users/:id", h.Accounts.DeleteUser)
	admin.PATCH("/profile", h.Accounts.UpdateProfile)

	admin.PUT("/about", h.Content.SaveAbout)
	admin.POST("/projects", h.Content.CreateProject)
	admin.PUT("/projects/:id", h.Content.UpdateProject)
	admin.DELETE("/projects/:id", h.Content.DeleteProject)
	admin.POST("/services", h.Content.CreateService)
	admin.PUT("/services/:id", h.Content.UpdateService)
	admin.DELETE("/services/:id", h.Content.DeleteService)

	admin.GET("/messages", h.Contact.List)
	admin.DELETE("/messages/:id", h.Contact.Delete)
	admin.GET("/notifications", h.Contact.Notifications)
	admin.POST("/notifications/read", h.Contact.MarkRead)
	admin.GET("/notifications/chime.wav", h.Contact.Chime)

	admin.GET("/inquiries", h.Inquiries.List)
	admin.PATCH("/inquiries/:id/status", h.Inquiries.UpdateStatus)
	admin.DELETE("/inquiries/:id", h.Inquiries.Delete)
	admin.GET("/inquiries/:id/messages", h.Inquiries.Messages)
	admin.POST("/inquiries/:id/messages", h.Inquiries.PostMessage)

	return e
}
