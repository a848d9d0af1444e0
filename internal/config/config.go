package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/prakhar2b/sm-dryfruto/internal/backend"
	pkgconfig "github.com/prakhar2b/sm-dryfruto/pkg/config"
	"github.com/prakhar2b/sm-dryfruto/pkg/database"
	"github.com/prakhar2b/sm-dryfruto/pkg/httpclient"
	"github.com/prakhar2b/sm-dryfruto/pkg/middleware"
	"github.com/prakhar2b/sm-dryfruto/pkg/tracing"
)

// Config holds all configuration for the storefront service.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8000"`

	// Content backend
	BackendURL          string        `env:"BACKEND_URL" envDefault:"http://localhost:8001"`
	BackendTimeout      time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	BackendMaxRetries   int           `env:"BACKEND_MAX_RETRIES" envDefault:"2"`
	ContentLoadTimeout  time.Duration `env:"CONTENT_LOAD_TIMEOUT" envDefault:"20s"`
	ContentPollInterval time.Duration `env:"CONTENT_POLL_INTERVAL" envDefault:"0s"`

	// Catalog
	PriceRangeMax float64 `env:"PRICE_RANGE_MAX" envDefault:"1000"`

	// Bulk order form
	RateLimitPerMinute int           `env:"BULK_ORDER_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int           `env:"BULK_ORDER_RATE_LIMIT_BURST" envDefault:"3"`
	SubmissionGuardTTL time.Duration `env:"SUBMISSION_GUARD_TTL" envDefault:"1m"`

	// Kafka, optional. Without brokers events are not published and
	// replicas only see their own changes.
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaGroupPrefix string   `env:"KAFKA_GROUP_PREFIX" envDefault:"dryfruto-storefront"`
	ReplicaID        string   `env:"REPLICA_ID"`

	// Redis, optional. Without it the submission guard is per replica.
	RedisEnabled bool `env:"REDIS_ENABLED" envDefault:"false"`
	Redis        database.RedisConfig

	// Browser origins of the storefront and admin panel.
	CORS middleware.CORSConfig

	Tracing tracing.Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.ReplicaID == "" {
		cfg.ReplicaID = uuid.NewString()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute http(s) URL, got %q", c.BackendURL)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.PriceRangeMax <= 0 {
		return fmt.Errorf("PRICE_RANGE_MAX must be positive, got %v", c.PriceRangeMax)
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("bulk order rate limit must be positive")
	}
	if c.ContentPollInterval < 0 {
		return fmt.Errorf("CONTENT_POLL_INTERVAL must not be negative")
	}
	return nil
}

// Backend returns the backend client configuration.
func (c *Config) Backend() backend.Config {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = c.BackendTimeout
	httpCfg.MaxRetries = c.BackendMaxRetries
	return backend.Config{
		BaseURL:        c.BackendURL,
		HTTP:           httpCfg,
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("content-backend"),
	}
}

// KafkaEnabled reports whether brokers are configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
