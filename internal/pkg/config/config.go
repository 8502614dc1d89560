package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/V4T54L/zid-tiktok-bridge/internal/usecase"
)

// Config holds all application configuration.
type Config struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9091"`
	MaxEventSize    int64         `env:"MAX_EVENT_SIZE_BYTES" envDefault:"1048576"` // 1MB
	ForwardTimeout  time.Duration `env:"FORWARD_TIMEOUT" envDefault:"15s"`
	DefaultCurrency string        `env:"DEFAULT_CURRENCY" envDefault:"SAR"`
	StoreURL        string        `env:"STORE_URL" envDefault:"https://tokotoysa.com/"`
	HashPII         bool          `env:"HASH_PII" envDefault:"true"`
	InferEventNames bool          `env:"INFER_EVENT_NAMES" envDefault:"false"`

	TikTok TikTokConfig
}

// TikTokConfig is the outbound Events API configuration. An empty access
// token is allowed; the API answers with its own error in that case.
type TikTokConfig struct {
	Endpoint    string `env:"TIKTOK_ENDPOINT" envDefault:"https://business-api.tiktok.com/open_api/v1.3/event/track/"`
	AccessToken string `env:"TIKTOK_ACCESS_TOKEN"`
	PixelID     string `env:"TIKTOK_PIXEL_ID"`
	EventSource string `env:"TIKTOK_EVENT_SOURCE" envDefault:"web"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate normalizes the currency default and checks values that would
// otherwise only fail at request time.
func (c *Config) Validate() error {
	c.DefaultCurrency = strings.ToUpper(strings.TrimSpace(c.DefaultCurrency))
	if !usecase.IsCurrencyCode(c.DefaultCurrency) {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", c.DefaultCurrency)
	}

	u, err := url.Parse(c.TikTok.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TIKTOK_ENDPOINT is not an absolute URL: %q", c.TikTok.Endpoint)
	}

	if c.MaxEventSize <= 0 {
		return fmt.Errorf("MAX_EVENT_SIZE_BYTES must be positive, got %d", c.MaxEventSize)
	}
	if c.ForwardTimeout <= 0 {
		return fmt.Errorf("FORWARD_TIMEOUT must be positive, got %s", c.ForwardTimeout)
	}

	return nil
}
