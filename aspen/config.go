package aspen

import (
	"time"

	"github.com/kbukum/aspen/httpclient"
	"github.com/kbukum/aspen/resilience"
	"github.com/kbukum/aspen/validation"
)

const defaultTimeout = 30 * time.Second

// Config holds the connection and identity settings of a Client.
type Config struct {
	// BaseURL is the service endpoint, e.g. "https://api.aspen.example/v1".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,http_url"`

	// AppKey identifies the application and is sent in X-PRO-Auth-App.
	AppKey string `yaml:"app_key" mapstructure:"app_key" validate:"required"`

	// AppSecret signs the X-PRO-Auth-Payload header. Never logged.
	AppSecret string `yaml:"app_secret" mapstructure:"app_secret" validate:"required"`

	// DeviceID identifies the calling device in every payload.
	DeviceID string `yaml:"device_id" mapstructure:"device_id" validate:"omitempty,max=128"`

	// Username is the user the session Token belongs to, if any.
	Username string `yaml:"username" mapstructure:"username"`

	// Token is a session token obtained from a previous sign-in. Empty
	// builds an application client.
	Token string `yaml:"token" mapstructure:"token" validate:"required_with=Username"`

	// Timeout bounds a single HTTP attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=0"`

	// TLS configures the transport's TLS settings.
	TLS *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry enables transport retries. Nil disables them.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker enables the transport circuit breaker. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration. Failures are INVALID_ARGUMENT errors
// with one detail per offending field.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// httpConfig derives the transport configuration.
func (c *Config) httpConfig() httpclient.Config {
	return httpclient.Config{
		Name:           "aspen",
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		TLS:            c.TLS,
		Headers:        c.Headers,
		Retry:          c.Retry,
		CircuitBreaker: c.CircuitBreaker,
	}
}
