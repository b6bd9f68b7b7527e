// @title        devport API
// @version      1.0
// @description  Portfolio, service inquiries and client dashboard backend.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	_ "github.com/devport/portfolio/docs"
	"github.com/devport/portfolio/internal/advisor"
	"github.com/devport/portfolio/internal/api"
	"github.com/devport/portfolio/internal/api/handler"
	"github.com/devport/portfolio/internal/api/metrics"
	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
	"github.com/devport/portfolio/internal/core/service"
	"github.com/devport/portfolio/internal/currency"
	mongostore "github.com/devport/portfolio/internal/infrastructure/db/mongo"
	redisstore "github.com/devport/portfolio/internal/infrastructure/db/redis"
	"github.com/devport/portfolio/internal/infrastructure/queue"
	"github.com/devport/portfolio/internal/infrastructure/storage/minio"
	"github.com/devport/portfolio/internal/inquirysync"
	"github.com/devport/portfolio/internal/notify"
	"github.com/devport/portfolio/internal/pkg/config"
	"github.com/devport/portfolio/internal/session"
	"github.com/devport/portfolio/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("cannot load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "devport",
	})
	log.Info().Str("env", cfg.Env).Msg("starting devport")

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot reach mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot reach redis")
	}
	defer func() { _ = rdb.Close() }()

	identities := mongostore.NewIdentityRepository(db)
	inquiries := mongostore.NewInquiryRepository(db)
	messages := mongostore.NewInquiryMessageRepository(db)
	about := mongostore.NewAboutRepository(db)
	projects := mongostore.NewProjectRepository(db)
	services := mongostore.NewServiceRepository(db)
	reviews := mongostore.NewReviewRepository(db)
	contacts := mongostore.NewContactRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":     identities.EnsureIndexes,
		"inquiries": inquiries.EnsureIndexes,
		"messages":  messages.EnsureIndexes,
		"content":   func(ctx context.Context) error { return mongostore.EnsureContentIndexes(ctx, db) },
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("cannot create indexes")
		}
	}

	seeder := &service.Seeder{
		Identities:    identities,
		About:         about,
		Projects:      projects,
		Services:      services,
		CDNBase:       cfg.Seed.CDNBase,
		AdminPassword: cfg.Seed.AdminPassword,
		Log:           logger.Component("seed"),
	}
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot seed default content")
	}

	sessions := session.NewManager(sessionBackend(cfg, rdb, log), logger.Component("session"))

	// --- Activity fan-out ---
	publisher := redisstore.NewPublisher(rdb, logger.Component("publisher"))
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, service.NewActivityService(publisher, logger.Component("activity")), logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Services ---
	dedup := redisstore.NewSubmissionGuard(rdb, time.Hour)
	authService := service.NewAuthService(identities, sessions, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(identities)
	contentService := service.NewContentService(about, projects, services, reviews)
	contactService := service.NewContactService(contacts, dedup, logger.Component("contact"))
	inquiryService := service.NewInquiryService(inquiries, messages, services, dedup, dispatcher, logger.Component("inquiry"))

	// --- Inbox watcher ---
	var inbox handler.InboxView
	if cfg.Inbox.Enabled {
		inboxLog := logger.Component("inbox")
		watcher := inquirysync.NewInbox(contactInbox{contactService}, inquirysync.InboxConfig{
			Interval: cfg.Inbox.Interval,
			Notifier: notify.Fanout{
				notify.NewLogNotifier(inboxLog),
				notify.NewCounting(metrics.InboxNotificationsTotal),
				publisher,
			},
			Notices: inquirysync.NoticeFunc(func(action string, err error) {
				inboxLog.Error().Err(err).Str("action", action).Msg("inbox action failed")
			}),
			Log: inboxLog,
		})
		watcher.Mount(ctx)
		defer watcher.Unmount()
		inbox = watcher
		log.Info().Dur("interval", cfg.Inbox.Interval).Msg("inbox watcher mounted")
	}

	// --- Optional integrations ---
	var signer ports.UploadSigner
	if cfg.Storage.Endpoint != "" {
		uploads, err := minio.New(ctx, minio.Config{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			Region:        cfg.Storage.Region,
			PresignTTL:    cfg.Storage.PresignTTL,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("cannot reach object storage")
		}
		signer = uploads
	}

	var generator advisor.Generator
	if cfg.Advisor.APIKey != "" {
		gen, err := advisor.NewGeminiGenerator(ctx, cfg.Advisor.APIKey, cfg.Advisor.Model)
		if err != nil {
			log.Warn().Err(err).Msg("career advice disabled")
		} else {
			generator = gen
		}
	}

	locator := currency.NewLocator(currency.Config{
		Endpoint: cfg.Geo.Endpoint,
		Timeout:  cfg.Geo.Timeout,
		CacheTTL: cfg.Geo.CacheTTL,
	}, logger.Component("geo"))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(float64(cfg.RateLimit.PerMinute) / 60),
		Burst: cfg.RateLimit.Burst,
	})
	defer limiter.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret:  cfg.JWTSecret,
		Sessions:   sessions,
		Identities: identities,
		Limiter:    limiter,
		Log:        logger.Component("http"),
	}, api.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Navigation: handler.NewNavigationHandler(locator),
		Content:    handler.NewContentHandler(contentService, locator),
		Inquiries:  handler.NewInquiryHandler(inquiryService),
		Contact:    handler.NewContactHandler(contactService, inbox),
		Accounts:   handler.NewAccountHandler(userService, advisor.New(generator, logger.Component("advisor")), signer),
		Health:     handler.NewHealthHandler(),
		Readiness: handler.NewHealthDependenciesHandler(map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		}),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("http server listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

// sessionBackend picks where session records live.
func sessionBackend(cfg *config.Config, rdb *goredis.Client, log zerolog.Logger) session.Backend {
	switch cfg.Session.Backend {
	case "memory":
		log.Warn().Msg("sessions are kept in memory and lost on restart")
		return session.NewMemoryBackend()
	case "file":
		b, err := session.NewFileBackend(cfg.Session.Dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Session.Dir).Msg("cannot open session directory")
		}
		return b
	default:
		return redisstore.NewSessionBackend(rdb, cfg.TokenTTL)
	}
}

// contactInbox exposes the contact service to the inbox watcher.
type contactInbox struct {
	contacts ports.ContactService
}

func (c contactInbox) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	return c.contacts.List(ctx)
}

func (c contactInbox) DeleteContactMessage(ctx context.Context, id string) error {
	return c.contacts.Delete(ctx, id)
}
