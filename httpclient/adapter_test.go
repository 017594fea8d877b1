package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/aspen/resilience"
)

func newTestAdapter(t *testing.T, cfg Config, opts ...Option) *Adapter {
	t.Helper()
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func fastRetry(attempts int) *resilience.RetryConfig {
	return &resilience.RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}
}

func TestAdapter_PostJSON(t *testing.T) {
	type seen struct {
		Method      string
		Path        string
		Query       string
		ContentType string
		Accept      string
		AppKey      string
		Body        map[string]string
	}
	var got seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Method = r.Method
		got.Path = r.URL.Path
		got.Query = r.URL.RawQuery
		got.ContentType = r.Header.Get("Content-Type")
		got.Accept = r.Header.Get("Accept")
		got.AppKey = r.Header.Get("X-PRO-Auth-App")
		_ = json.NewDecoder(r.Body).Decode(&got.Body)
		w.Header().Set("X-PRO-Response-Id", "r-1")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		BaseURL: srv.URL + "/api/",
		Headers: map[string]string{"X-PRO-Auth-App": "default"},
	})

	resp, err := a.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "/users/pin",
		Headers: map[string]string{"X-PRO-Auth-App": "app-key"},
		Query:   map[string]string{"lang": "es"},
		Body:    map[string]string{"PinNumber": "1234"},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	want := seen{
		Method:      http.MethodPost,
		Path:        "/api/users/pin",
		Query:       "lang=es",
		ContentType: "application/json",
		Accept:      "application/json",
		AppKey:      "app-key",
		Body:        map[string]string{"PinNumber": "1234"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	if !resp.IsSuccess() || string(resp.Body) != `{"ok":true}` {
		t.Errorf("unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
	if resp.Header("x-pro-response-id") != "r-1" {
		t.Errorf("expected response header lookup to be case-insensitive, got %v", resp.Headers)
	}
}

func TestAdapter_NoBody(t *testing.T) {
	var length int64 = -2
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		length = int64(len(body))
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodPost, Path: "users/activation-code"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if length != 0 || contentType != "" {
		t.Errorf("expected empty body without content type, got %d bytes %q", length, contentType)
	}
}

func codeIs(code ErrorCode) func(error) bool {
	return func(err error) bool { return hasCode(err, code) }
}

func TestAdapter_StatusErrorsKeepResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"bad request", http.StatusBadRequest, func(err error) bool { return !IsRetryable(err) }},
		{"unauthorized", http.StatusUnauthorized, codeIs(ErrCodeAuth)},
		{"not found", http.StatusNotFound, codeIs(ErrCodeNotFound)},
		{"rate limited", http.StatusTooManyRequests, IsRetryable},
		{"server", http.StatusInternalServerError, codeIs(ErrCodeServer)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"Message":"nope"}`))
			}))
			defer srv.Close()

			a := newTestAdapter(t, Config{BaseURL: srv.URL})
			resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Errorf("unexpected classification: %v", err)
			}
			if resp == nil || resp.StatusCode != tc.status || string(resp.Body) != `{"Message":"nope"}` {
				t.Errorf("expected response to be returned with the error, got %+v", resp)
			}
			var he *Error
			if !errors.As(err, &he) || !he.IsStatus() {
				t.Errorf("expected status *Error, got %T", err)
			}
		})
	}
}

func TestAdapter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/slow"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestAdapter_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAdapter(t, Config{BaseURL: srv.URL})
	_, err := a.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Fatalf("expected cancellation to be classified as timeout, got %v", err)
	}
}

func TestAdapter_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, Config{BaseURL: url})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !hasCode(err, ErrCodeConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected no response, got %+v", resp)
	}
}

func TestAdapter_EncodingError(t *testing.T) {
	a := newTestAdapter(t, Config{BaseURL: "http://127.0.0.1:1"})
	_, err := a.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: make(chan int)})
	if !IsEncoding(err) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}

func TestAdapter_RetryRecovers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var retries []int
	retry := fastRetry(3)
	retry.OnRetry = func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) }

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Retry: retry})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
	if diff := cmp.Diff([]int{1, 2}, retries); diff != "" {
		t.Errorf("OnRetry attempts mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_RetryExhaustedKeepsLastResponse(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Retry: fastRetry(2)})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !hasCode(err, ErrCodeServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusBadGateway || string(resp.Body) != "upstream" {
		t.Errorf("expected last response, got %+v", resp)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestAdapter_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Retry: fastRetry(3)})
	_, _ = a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if calls.Load() != 1 {
		t.Errorf("expected a single call for 400, got %d", calls.Load())
	}
}

func TestAdapter_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var transitions []string
	cb := &resilience.CircuitBreakerConfig{
		MaxFailures: 2,
		Timeout:     time.Hour,
		OnStateChange: func(_ string, from, to resilience.State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	}
	a := newTestAdapter(t, Config{Name: "aspen", BaseURL: srv.URL, CircuitBreaker: cb})
	ctx := context.Background()

	for range 2 {
		_, _ = a.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	}
	if a.IsAvailable(ctx) {
		t.Fatal("expected adapter to be unavailable while the breaker is open")
	}

	_, err := a.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !hasCode(err, ErrCodeConnection) || !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected connection error wrapping ErrCircuitOpen, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected the open breaker to short-circuit, got %d calls", calls.Load())
	}
	if diff := cmp.Diff([]string{"closed->open"}, transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_CircuitBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		BaseURL:        srv.URL,
		CircuitBreaker: &resilience.CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Hour},
	})
	for range 3 {
		_, _ = a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	}
	if !a.IsAvailable(context.Background()) {
		t.Error("4xx responses must not open the breaker")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestAdapter_WithRoundTripper(t *testing.T) {
	var gotURL string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"AuthToken":"t"}`)),
			Request:    r,
		}, nil
	})

	a := newTestAdapter(t, Config{Name: "aspen-http", BaseURL: "https://api.example.com"}, WithRoundTripper(rt))
	resp, err := a.Execute(context.Background(), Request{Method: http.MethodPost, Path: "auth/signin"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if gotURL != "https://api.example.com/auth/signin" {
		t.Errorf("unexpected URL %q", gotURL)
	}
	if string(resp.Body) != `{"AuthToken":"t"}` {
		t.Errorf("unexpected body %s", resp.Body)
	}
	if a.Name() != "aspen-http" {
		t.Errorf("Name() = %q", a.Name())
	}
	if a.config.Timeout != defaultTimeout {
		t.Errorf("expected defaults applied to stored config, got %v", a.config.Timeout)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{TLS: &TLSConfig{KeyFile: "key.pem"}})
	if err == nil {
		t.Fatal("expected error for key without cert")
	}
}

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		wantBody    string
		wantType    string
		wantNilBody bool
	}{
		{"nil", nil, "", "", true},
		{"bytes", []byte(`{"a":1}`), `{"a":1}`, "application/json", false},
		{"string", "hello", "hello", "text/plain", false},
		{"struct", struct {
			CurrentValue string
			NewValue     string
		}{"1111", "2222"}, `{"CurrentValue":"1111","NewValue":"2222"}`, "application/json", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ct, err := encodeBody(tc.body)
			if err != nil {
				t.Fatalf("encodeBody() error: %v", err)
			}
			if tc.wantNilBody {
				if r != nil {
					t.Fatal("expected nil reader")
				}
				return
			}
			data, _ := io.ReadAll(r)
			if string(data) != tc.wantBody || ct != tc.wantType {
				t.Errorf("got (%s, %q), want (%s, %q)", data, ct, tc.wantBody, tc.wantType)
			}
		})
	}
}
