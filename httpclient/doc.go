// Package httpclient provides the HTTP transport used by the Aspen client:
// base URL resolution, default headers, JSON body encoding, TLS, status
// classification and opt-in retry and circuit breaking.
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Name:    "aspen-http",
//	    BaseURL: "https://api.example.com/v1/",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "users/pin",
//	    Body:   payload,
//	})
//
// Non-2xx responses return the Response together with a classified *Error,
// so callers keep access to the status and raw body.
//
// # With Resilience
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://api.example.com/v1/",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("aspen"),
//	})
package httpclient
