// Package resilience provides the opt-in transport policies used by the
// Aspen HTTP adapter: exponential-backoff retry (built on
// github.com/cenkalti/backoff/v4) and a circuit breaker.
//
// Neither policy is applied by the SDK core. They are enabled per adapter:
//
//	cfg := httpclient.Config{
//	    BaseURL:        "https://api.example.com/v1/",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("aspen"),
//	}
package resilience
