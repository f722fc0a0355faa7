package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/synapseiq/site/resilience"
)

const defaultTimeout = 30 * time.Second

// Config describes one upstream. Auth, Retry and CircuitBreaker are built in
// code (see config.SiteConfig.HTTPClientConfig) rather than read from YAML.
type Config struct {
	Name    string            `yaml:"name" mapstructure:"name"` // logger component and health name
	BaseURL string            `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"` // per attempt
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	Auth           *AuthConfig                      `yaml:"-" mapstructure:"-"`
	Retry          *resilience.RetryConfig          `yaml:"-" mapstructure:"-"` // nil: single attempt
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"` // nil: no breaker
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate requires a positive timeout and, when set, an absolute base URL.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL == "" {
		return nil
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("httpclient: invalid base_url %q", c.BaseURL)
	}
	return nil
}

// DefaultRetryConfig retries only failures classified as retryable: timeouts,
// connection errors, 429 and 5xx.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}
