package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/env"
)

// Config is the runtime configuration of the shop server.
type Config struct {
	AppHost string `validate:"required"`
	AppPort int    `validate:"min=1,max=65535"`
	AppEnv  string `validate:"oneof=dev prod test"`
	SiteURL string `validate:"required,url"`

	StripeSecretKey  string        `validate:"required"`
	WebhookSecret    string        `validate:"required"`
	WebhookTolerance time.Duration `validate:"min=0"`

	PexelsKey        string `validate:"required"`
	PexelsAPIBaseURL string `validate:"omitempty,url"`

	ZapierWebhookURL string `validate:"required,url"`
	ZapierSecretKey  string

	EnrichmentTimeout time.Duration `validate:"min=0"`
	DeliveryTimeout   time.Duration `validate:"min=0"`

	CacheHost     string
	CachePort     int `validate:"omitempty,min=1,max=65535"`
	CachePassword string

	MetricsUser     string `validate:"required_with=MetricsPassword"`
	MetricsPassword string `validate:"required_with=MetricsUser"`
	DebugUser       string `validate:"required_with=DebugPassword"`
	DebugPassword   string `validate:"required_with=DebugUser"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse() (*Config, error) {
	var errs []string
	intVar := func(key string, def int) int {
		raw := env.GetEnv(key, strconv.Itoa(def))
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not an integer", key, raw))
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		raw := env.GetEnv(key, def.String())
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a duration", key, raw))
		}
		return v
	}
	str := func(key, def string) string {
		return strings.TrimSpace(env.GetEnv(key, def))
	}

	cfg := &Config{
		AppHost: str("APP_HOST", "localhost"),
		AppPort: intVar("APP_PORT", 4000),
		AppEnv:  strings.ToLower(str("APP_ENV", "prod")),
		SiteURL: strings.TrimRight(str("PUBLIC_SITE_URL", "http://localhost:4000"), "/"),

		StripeSecretKey:  str("STRIPE_SECRET_KEY", ""),
		WebhookSecret:    str("STRIPE_WEBHOOK_SECRET", ""),
		WebhookTolerance: durationVar("STRIPE_WEBHOOK_TOLERANCE", 5*time.Minute),

		PexelsKey:        str("PEXELS_KEY", ""),
		PexelsAPIBaseURL: str("PEXELS_API_BASE_URL", ""),

		ZapierWebhookURL: str("ZAPIER_WEBHOOK_URL", ""),
		ZapierSecretKey:  str("ZAPIER_SECRET_KEY", ""),

		EnrichmentTimeout: durationVar("ENRICHMENT_TIMEOUT", 10*time.Second),
		DeliveryTimeout:   durationVar("DELIVERY_TIMEOUT", 10*time.Second),

		CacheHost:     str("CACHE_HOST", ""),
		CachePort:     intVar("CACHE_PORT", 6379),
		CachePassword: str("CACHE_PASSWORD", ""),

		MetricsUser:     str("METRICS_USER", ""),
		MetricsPassword: str("METRICS_PASSWORD", ""),
		DebugUser:       str("DEBUG_USER", ""),
		DebugPassword:   str("DEBUG_PASSWORD", ""),
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.AppHost, c.AppPort)
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

func (c *Config) CacheEnabled() bool {
	return c.CacheHost != ""
}

func (c *Config) DebugEnabled() bool {
	return c.DebugUser != "" && c.DebugPassword != ""
}

func (c *Config) MetricsProtected() bool {
	return c.MetricsUser != "" && c.MetricsPassword != ""
}
