package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/aspen/logger"
	"github.com/kbukum/aspen/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "http"
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single attempt, including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retry != nil && c.Retry.RetryIf == nil {
		retry := *c.Retry
		retry.RetryIf = IsRetryable
		c.Retry = &retry
	}
	if c.CircuitBreaker != nil && c.CircuitBreaker.IsFailure == nil {
		cb := *c.CircuitBreaker
		cb.IsFailure = countsAgainstBreaker
		c.CircuitBreaker = &cb
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Option customizes an Adapter after construction.
type Option func(*Adapter)

// WithRoundTripper replaces the underlying transport. TLS settings from
// Config are not applied to rt.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// WithLogger sets the logger used for retry and breaker events.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) { a.log = log.WithComponent("httpclient") }
}

// DefaultRetryConfig returns a retry config that only retries transport
// faults, 429 and 5xx responses.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns a circuit breaker config that ignores
// 4xx responses.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = countsAgainstBreaker
	return &cfg
}

// countsAgainstBreaker treats caller-side rejections as healthy responses.
func countsAgainstBreaker(err error) bool {
	return err != nil && IsRetryable(err)
}
