package aspen

import (
	"testing"
	"time"

	"github.com/kbukum/aspen/aspentest"
)

const (
	testAppKey    = "app-key"
	testAppSecret = "app-secret"
	testDeviceID  = "device-1"
	testNonce     = "5b0a6c1e-2f8d-4a4e-9c61-0d7f2f3a9b10"
)

var testEpoch = time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		AppKey:    testAppKey,
		AppSecret: testAppSecret,
		DeviceID:  testDeviceID,
	}
}

// newSpyClient builds a signed-in client on a spy with a fixed clock and nonce.
func newSpyClient(t *testing.T, spy *aspentest.Spy, opts ...Option) *Client {
	t.Helper()
	cfg := testConfig("https://aspen.test/api")
	cfg.Username = "52080323"
	cfg.Token = "session-token"

	opts = append([]Option{
		WithTransport(spy),
		WithClock(func() time.Time { return testEpoch }),
		WithNonceSource(func() string { return testNonce }),
	}, opts...)

	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}
