package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Usage     UsageAPIConfig
	Catalog   CatalogAPIConfig
	ICCID     ICCIDConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	Mode    string `envconfig:"GIN_MODE" default:"release"`
	Version string `envconfig:"VERSION" default:"1.4.0"`
}

// UsageAPIConfig configures the bundle-usage provider (key-header auth).
type UsageAPIConfig struct {
	BaseURL string `envconfig:"ESIMGO_API_URL" default:"https://api.esim-go.com"`
	APIKey  string `envconfig:"ESIMGO_API_KEY"`
	Version string `envconfig:"ESIMGO_API_VERSION" default:"2.4"`
}

// CatalogAPIConfig configures the coverage/packages provider
// (form-encoded credentials).
type CatalogAPIConfig struct {
	CoverageURL string `envconfig:"CATALOG_COVERAGE_URL" default:"https://app.esimvault.net/api/coverage"`
	PackagesURL string `envconfig:"CATALOG_PACKAGES_URL" default:"https://app.esimvault.net/api/packages"`
	Email       string `envconfig:"CATALOG_EMAIL"`
	Password    string `envconfig:"CATALOG_PASSWORD"`
}

// ICCIDConfig bounds the accepted identifier length.
type ICCIDConfig struct {
	MinLen int `envconfig:"ICCID_MIN_LEN" default:"18"`
	MaxLen int `envconfig:"ICCID_MAX_LEN" default:"22"`
}

type RateLimitConfig struct {
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 日志脱敏: 不记录敏感配置
	log.Printf("[config] eSIM balance proxy loaded: port=%s usage_api=%s/v%s coverage=%s iccid_len=[%d,%d]",
		cfg.Server.Port, cfg.Usage.BaseURL, cfg.Usage.Version, cfg.Catalog.CoverageURL,
		cfg.ICCID.MinLen, cfg.ICCID.MaxLen)

	return &cfg, nil
}

// Validate checks structural settings. Missing upstream credentials are not
// an error here: the affected routes answer with config_error instead, so a
// partially configured process can still serve the other routes.
func (c *Config) Validate() error {
	if c.ICCID.MinLen <= 0 || c.ICCID.MaxLen < c.ICCID.MinLen {
		return fmt.Errorf("invalid ICCID length bounds [%d,%d]", c.ICCID.MinLen, c.ICCID.MaxLen)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("invalid rate limit settings: %d per %v", c.RateLimit.Requests, c.RateLimit.Window)
	}
	return nil
}

// HasUsageCredentials reports whether the usage API key is configured.
func (c *Config) HasUsageCredentials() bool {
	return c.Usage.APIKey != ""
}

// HasCatalogCredentials reports whether the coverage/packages login is configured.
func (c *Config) HasCatalogCredentials() bool {
	return c.Catalog.Email != "" && c.Catalog.Password != ""
}
