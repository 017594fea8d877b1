package aspen

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/aspen/aspentest"
	"github.com/kbukum/aspen/errors"
	"github.com/kbukum/aspen/httpclient"
)

var blankValues = []string{"", " ", "\t", "\n  "}

func TestSetPin_RejectsBlankArguments(t *testing.T) {
	ctx := context.Background()

	type op struct {
		name string
		call func(c *Client, a, b string) error
	}
	ops := []op{
		{"SetPin", func(c *Client, a, b string) error {
			_, err := c.CurrentUser().SetPin(ctx, a, b)
			return err
		}},
		{"SetPinAsync", func(c *Client, a, b string) error {
			_, err := c.CurrentUser().SetPinAsync(ctx, a, b).Await(ctx)
			return err
		}},
		{"UpdatePin", func(c *Client, a, b string) error {
			_, err := c.CurrentUser().UpdatePin(ctx, a, b)
			return err
		}},
		{"UpdatePinAsync", func(c *Client, a, b string) error {
			_, err := c.CurrentUser().UpdatePinAsync(ctx, a, b).Await(ctx)
			return err
		}},
	}

	for _, o := range ops {
		for _, blank := range blankValues {
			for _, args := range [][2]string{{blank, "123456"}, {"1234", blank}, {blank, blank}} {
				t.Run(o.name, func(t *testing.T) {
					spy := aspentest.NewSpy()
					c := newSpyClient(t, spy)

					err := o.call(c, args[0], args[1])
					if !errors.IsInvalidArgument(err) {
						t.Fatalf("%s(%q, %q) error = %v, want INVALID_ARGUMENT", o.name, args[0], args[1], err)
					}
					if n := spy.CallCount(); n != 0 {
						t.Errorf("expected no transport calls, got %d", n)
					}
				})
			}
		}
	}
}

func TestSetPin_NamesFirstBlankField(t *testing.T) {
	c := newSpyClient(t, aspentest.NewSpy())
	ctx := context.Background()

	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"pin", func() error { _, err := c.SetPin(ctx, "", "123456"); return err }(), "pinNumber"},
		{"activation code", func() error { _, err := c.SetPin(ctx, "1234", " "); return err }(), "activationCode"},
		{"current", func() error { _, err := c.UpdatePin(ctx, "", "1234"); return err }(), "currentPin"},
		{"new", func() error { _, err := c.UpdatePin(ctx, "1234", ""); return err }(), "newPin"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr, ok := errors.AsAppError(tc.err)
			if !ok {
				t.Fatalf("expected AppError, got %T", tc.err)
			}
			if got := appErr.Details[errors.DetailField]; got != tc.field {
				t.Errorf("field detail = %v, want %s", got, tc.field)
			}
		})
	}
}

func TestSetPinAvoidingValidation_ReachesTransport(t *testing.T) {
	ctx := context.Background()
	for _, blank := range blankValues {
		spy := aspentest.NewSpy()
		c := newSpyClient(t, spy)

		if _, err := c.setPinAvoidingValidation(ctx, blank, blank); err != nil {
			t.Fatalf("setPinAvoidingValidation(%q) error: %v", blank, err)
		}
		if _, err := c.setPinAvoidingValidationAsync(ctx, blank, "").Await(ctx); err != nil {
			t.Fatalf("setPinAvoidingValidationAsync(%q) error: %v", blank, err)
		}

		calls := spy.Calls()
		if len(calls) != 2 {
			t.Fatalf("expected 2 transport calls, got %d", len(calls))
		}
		if calls[0].Method != http.MethodPost || calls[0].Path != "users/pin" {
			t.Errorf("unexpected call %s %s", calls[0].Method, calls[0].Path)
		}
	}
}

func TestSetPin_SyncAndAsyncSendSameBody(t *testing.T) {
	spy := aspentest.NewSpy()
	c := newSpyClient(t, spy)
	ctx := context.Background()

	if _, err := c.CurrentUser().SetPin(ctx, "1234", "987654"); err != nil {
		t.Fatalf("SetPin() error: %v", err)
	}
	if _, err := c.CurrentUser().SetPinAsync(ctx, "1234", "987654").Await(ctx); err != nil {
		t.Fatalf("SetPinAsync() error: %v", err)
	}

	calls := spy.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	want := `{"PinNumber":"1234","ActivationCode":"987654"}`
	for i, call := range calls {
		if string(call.Body) != want {
			t.Errorf("call %d body = %s, want %s", i, call.Body, want)
		}
		if call.Method != http.MethodPost || call.Path != "users/pin" {
			t.Errorf("call %d = %s %s", i, call.Method, call.Path)
		}
	}
	if diff := cmp.Diff(calls[0], calls[1]); diff != "" {
		t.Errorf("sync and async calls differ (-sync +async):\n%s", diff)
	}
}

func TestBodylessOperations(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		call func(u UserModule) error
		path string
	}{
		{"RequestActivationCode", func(u UserModule) error { _, err := u.RequestActivationCode(ctx); return err }, "users/activation-code"},
		{"RequestActivationCodeAsync", func(u UserModule) error { _, err := u.RequestActivationCodeAsync(ctx).Await(ctx); return err }, "users/activation-code"},
		{"RequestSingleUseToken", func(u UserModule) error { _, err := u.RequestSingleUseToken(ctx); return err }, "tokens/request"},
		{"RequestSingleUseTokenAsync", func(u UserModule) error { _, err := u.RequestSingleUseTokenAsync(ctx).Await(ctx); return err }, "tokens/request"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spy := aspentest.NewSpy()
			c := newSpyClient(t, spy)

			if err := tc.call(c.CurrentUser()); err != nil {
				t.Fatalf("error: %v", err)
			}
			call, ok := spy.LastCall()
			if !ok {
				t.Fatal("expected a transport call")
			}
			if call.Method != http.MethodPost || call.Path != tc.path {
				t.Errorf("got %s %s, want POST %s", call.Method, call.Path, tc.path)
			}
			if call.Body != nil {
				t.Errorf("expected no body, got %s", call.Body)
			}
			if _, ok := call.Headers["Content-Type"]; ok {
				t.Error("expected no Content-Type for a bodyless request")
			}
		})
	}
}

func TestUpdatePin_PatchesPinRoute(t *testing.T) {
	spy := aspentest.NewSpy()
	c := newSpyClient(t, spy)
	ctx := context.Background()

	if _, err := c.CurrentUser().UpdatePin(ctx, "1234", "5678"); err != nil {
		t.Fatalf("UpdatePin() error: %v", err)
	}
	if _, err := c.CurrentUser().UpdatePinAsync(ctx, "1234", "5678").Await(ctx); err != nil {
		t.Fatalf("UpdatePinAsync() error: %v", err)
	}

	for _, call := range spy.Calls() {
		want := aspentest.Call{
			Method:  http.MethodPatch,
			Path:    "users/pin",
			Headers: call.Headers,
			Body:    []byte(`{"CurrentValue":"1234","NewValue":"5678"}`),
		}
		if diff := cmp.Diff(want, call); diff != "" {
			t.Errorf("call mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSyncAndAsyncYieldEqualEnvelopes(t *testing.T) {
	ctx := context.Background()
	body := `{"Nickname":"jdoe"}`

	tests := []struct {
		name  string
		sync  func(u UserModule) (*Response, error)
		async func(u UserModule) *Future[*Response]
	}{
		{
			"SetPin",
			func(u UserModule) (*Response, error) { return u.SetPin(ctx, "1234", "987654") },
			func(u UserModule) *Future[*Response] { return u.SetPinAsync(ctx, "1234", "987654") },
		},
		{
			"RequestActivationCode",
			func(u UserModule) (*Response, error) { return u.RequestActivationCode(ctx) },
			func(u UserModule) *Future[*Response] { return u.RequestActivationCodeAsync(ctx) },
		},
		{
			"RequestSingleUseToken",
			func(u UserModule) (*Response, error) { return u.RequestSingleUseToken(ctx) },
			func(u UserModule) *Future[*Response] { return u.RequestSingleUseTokenAsync(ctx) },
		},
		{
			"UpdatePin",
			func(u UserModule) (*Response, error) { return u.UpdatePin(ctx, "1234", "5678") },
			func(u UserModule) *Future[*Response] { return u.UpdatePinAsync(ctx, "1234", "5678") },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spy := aspentest.NewSpy(aspentest.OK(body), aspentest.OK(body))
			c := newSpyClient(t, spy)

			syncResp, err := tc.sync(c.CurrentUser())
			if err != nil {
				t.Fatalf("sync error: %v", err)
			}
			asyncResp, err := tc.async(c.CurrentUser()).Await(ctx)
			if err != nil {
				t.Fatalf("async error: %v", err)
			}
			if diff := cmp.Diff(syncResp, asyncResp); diff != "" {
				t.Errorf("envelopes differ (-sync +async):\n%s", diff)
			}
			if syncResp.StatusCode != http.StatusOK || string(syncResp.Body) != body {
				t.Errorf("unexpected envelope %+v", syncResp)
			}
		})
	}
}

func TestTransportErrorsSurfaceAsTransportFailure(t *testing.T) {
	ctx := context.Background()
	causes := []error{
		stderrors.New("connection reset by peer"),
		httpclient.NewConnectionError(stderrors.New("dial tcp: connection refused")),
		httpclient.NewTimeoutError(context.DeadlineExceeded),
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			spy := aspentest.NewSpy(aspentest.Fail(cause), aspentest.Fail(cause))
			c := newSpyClient(t, spy)

			_, syncErr := c.CurrentUser().RequestSingleUseToken(ctx)
			_, asyncErr := c.CurrentUser().RequestSingleUseTokenAsync(ctx).Await(ctx)

			for name, err := range map[string]error{"sync": syncErr, "async": asyncErr} {
				if !errors.IsTransportFailure(err) {
					t.Errorf("%s error = %v, want TRANSPORT_FAILURE", name, err)
				}
				if !stderrors.Is(err, cause) {
					t.Errorf("%s error does not wrap the cause", name)
				}
			}
		})
	}
}
