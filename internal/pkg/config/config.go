package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Session   SessionConfig
	Storage   StorageConfig
	Geo       GeoConfig
	Advisor   AdvisorConfig
	Inbox     InboxConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
	Activity  ActivityConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devport"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SessionConfig selects where session records live: redis, file or memory.
type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=redis"`
	Dir     string `env:"SESSION_DIR,     default=./sessions"`
}

// StorageConfig configures image uploads. An empty endpoint disables them.
type StorageConfig struct {
	Endpoint      string        `env:"STORAGE_ENDPOINT"`
	AccessKey     string        `env:"STORAGE_ACCESS_KEY"`
	SecretKey     string        `env:"STORAGE_SECRET_KEY"`
	Bucket        string        `env:"STORAGE_BUCKET,      default=devport"`
	Region        string        `env:"STORAGE_REGION"`
	PublicBaseURL string        `env:"STORAGE_PUBLIC_URL"`
	PresignTTL    time.Duration `env:"STORAGE_PRESIGN_TTL, default=15m"`
}

type GeoConfig struct {
	Endpoint string        `env:"GEO_ENDPOINT,  default=https://ipapi.co"`
	Timeout  time.Duration `env:"GEO_TIMEOUT,   default=3s"`
	CacheTTL time.Duration `env:"GEO_CACHE_TTL, default=1h"`
}

// AdvisorConfig configures career advice. Without an API key every request
// gets the fallback text.
type AdvisorConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

type InboxConfig struct {
	Enabled  bool          `env:"INBOX_WATCH_ENABLED,  default=false"`
	Interval time.Duration `env:"INBOX_WATCH_INTERVAL, default=5s"`
}

// RateLimitConfig throttles public submissions per caller.
type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=10"`
	Burst     int `env:"RATE_LIMIT_BURST,      default=10"`
}

type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	CDNBase       string `env:"SEED_CDN_BASE, default=https://utfs.io/f/"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Session.Backend {
	case "redis", "file", "memory":
	default:
		return fmt.Errorf("SESSION_BACKEND must be redis, file or memory, got %q", c.Session.Backend)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// Development reports whether the service runs locally.
func (c *Config) Development() bool {
	return c.Env == "development"
}
