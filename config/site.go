package config

import (
	"net/url"
	"os"
	"time"

	"github.com/synapseiq/site/httpclient"
	"github.com/synapseiq/site/observability"
	"github.com/synapseiq/site/util"
	"github.com/synapseiq/site/validation"
)

const (
	// DefaultBaseURL is the testimonials API used when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"
	// LegacyBaseURLEnv is read when api.base_url is not set.
	LegacyBaseURLEnv = "NEXT_PUBLIC_API_URL"

	DefaultTimeout         = 10 * time.Second
	DefaultPageSize        = 10
	DefaultInitialPageSize = 1000
	MaxPageSize            = 1000

	FallbackNone   = "none"
	FallbackSample = "sample"
)

// SiteConfig is the configuration of the synapseiq binary.
type SiteConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	API           APIConfig            `yaml:"api" mapstructure:"api"`
	Feed          FeedConfig           `yaml:"feed" mapstructure:"feed"`
	List          ListConfig           `yaml:"list" mapstructure:"list"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// APIConfig configures access to the testimonials API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Token is sent as a bearer credential when set.
	Token          string               `yaml:"token" mapstructure:"token"`
	Retry          RetryConfig          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// RetryConfig enables transport retries. Off unless Enabled is set.
type RetryConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
}

// CircuitBreakerConfig enables fail-fast after repeated API failures.
type CircuitBreakerConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxFailures int           `yaml:"max_failures" mapstructure:"max_failures"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FeedConfig configures the testimonial feed.
type FeedConfig struct {
	PageSize        int    `yaml:"page_size" mapstructure:"page_size"`
	InitialPageSize int    `yaml:"initial_page_size" mapstructure:"initial_page_size"`
	Fallback        string `yaml:"fallback" mapstructure:"fallback"`
}

// ListConfig configures the list command. Fallback applies when the API
// cannot be read and defaults to sample.
type ListConfig struct {
	Fallback string `yaml:"fallback" mapstructure:"fallback"`
}

// LoadSiteConfig loads, defaults and validates the site configuration.
func LoadSiteConfig(serviceName string, opts ...LoaderOption) (*SiteConfig, error) {
	var cfg SiteConfig
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = util.SanitizeEnvValue(os.Getenv(LegacyBaseURLEnv))
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills in zero-value fields.
func (c *SiteConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()

	c.API.BaseURL = util.Coalesce(c.API.BaseURL, DefaultBaseURL)
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.Retry.MaxAttempts <= 0 {
		c.API.Retry.MaxAttempts = 3
	}
	if c.API.Retry.InitialBackoff <= 0 {
		c.API.Retry.InitialBackoff = 200 * time.Millisecond
	}
	if c.API.CircuitBreaker.MaxFailures <= 0 {
		c.API.CircuitBreaker.MaxFailures = 5
	}
	if c.API.CircuitBreaker.Timeout <= 0 {
		c.API.CircuitBreaker.Timeout = 30 * time.Second
	}

	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = DefaultPageSize
	}
	if c.Feed.InitialPageSize <= 0 {
		c.Feed.InitialPageSize = DefaultInitialPageSize
	}
	c.Feed.Fallback = util.Coalesce(c.Feed.Fallback, FallbackNone)
	c.List.Fallback = util.Coalesce(c.List.Fallback, FallbackSample)

	c.Observability.ApplyDefaults()
}

// Validate checks the site configuration.
func (c *SiteConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}

	u, err := url.Parse(c.API.BaseURL)
	v := validation.New().
		Required("api.base_url", c.API.BaseURL).
		Custom(err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "",
			"api.base_url", "must be an absolute http(s) URL").
		Custom(c.API.Timeout > 0, "api.timeout", "must be positive").
		Range("feed.page_size", c.Feed.PageSize, 1, MaxPageSize).
		Range("feed.initial_page_size", c.Feed.InitialPageSize, 1, MaxPageSize).
		OneOf("feed.fallback", c.Feed.Fallback, []string{FallbackNone, FallbackSample}).
		OneOf("list.fallback", c.List.Fallback, []string{FallbackNone, FallbackSample})
	if c.API.Retry.Enabled {
		v.Min("api.retry.max_attempts", c.API.Retry.MaxAttempts, 1)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return c.Observability.Validate()
}

// HTTPClientConfig builds the adapter config for the testimonials API.
func (c *SiteConfig) HTTPClientConfig() httpclient.Config {
	hc := httpclient.Config{
		Name:    "testimonials-api",
		BaseURL: c.API.BaseURL,
		Timeout: c.API.Timeout,
		Headers: map[string]string{"Accept": "application/json"},
	}
	if c.API.Token != "" {
		hc.Auth = httpclient.BearerAuth(c.API.Token)
	}
	if c.API.Retry.Enabled {
		retry := httpclient.DefaultRetryConfig()
		retry.MaxAttempts = c.API.Retry.MaxAttempts
		retry.InitialBackoff = c.API.Retry.InitialBackoff
		hc.Retry = retry
	}
	if c.API.CircuitBreaker.Enabled {
		cb := httpclient.DefaultCircuitBreakerConfig(hc.Name)
		cb.MaxFailures = c.API.CircuitBreaker.MaxFailures
		cb.Timeout = c.API.CircuitBreaker.Timeout
		hc.CircuitBreaker = cb
	}
	return hc
}
