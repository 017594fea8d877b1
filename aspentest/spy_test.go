package aspentest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/aspen/httpclient"
)

func TestSpy_RecordsCalls(t *testing.T) {
	spy := NewSpy()
	ctx := context.Background()

	_, err := spy.Execute(ctx, httpclient.Request{
		Method:  http.MethodPatch,
		Path:    "users/pin",
		Headers: map[string]string{"X-PRO-Auth-App": "k"},
		Body:    map[string]string{"NewValue": "4321"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	_, _ = spy.Execute(ctx, httpclient.Request{Method: http.MethodPost, Path: "tokens/request"})

	want := []Call{
		{Method: http.MethodPatch, Path: "users/pin", Headers: map[string]string{"X-PRO-Auth-App": "k"}, Body: []byte(`{"NewValue":"4321"}`)},
		{Method: http.MethodPost, Path: "tokens/request"},
	}
	if diff := cmp.Diff(want, spy.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if spy.CallCount() != 2 {
		t.Errorf("CallCount() = %d", spy.CallCount())
	}

	spy.Reset()
	if _, ok := spy.LastCall(); ok {
		t.Error("expected no calls after Reset")
	}
}

func TestSpy_ScriptedReplies(t *testing.T) {
	boom := errors.New("connection reset")
	spy := NewSpy(OK(`{"a":1}`), Status(http.StatusConflict, `{"Message":"dup"}`))
	spy.Script(Fail(boom))
	ctx := context.Background()
	req := httpclient.Request{Method: http.MethodPost, Path: "x"}

	resp, err := spy.Execute(ctx, req)
	if err != nil || string(resp.Body) != `{"a":1}` {
		t.Fatalf("first reply = (%v, %v)", resp, err)
	}

	resp, err = spy.Execute(ctx, req)
	var he *httpclient.Error
	if !errors.As(err, &he) || he.StatusCode != http.StatusConflict {
		t.Fatalf("expected classified 409, got %v", err)
	}
	if resp == nil || string(resp.Body) != `{"Message":"dup"}` {
		t.Errorf("expected response with the error, got %+v", resp)
	}

	if _, err = spy.Execute(ctx, req); !errors.Is(err, boom) {
		t.Fatalf("expected scripted failure, got %v", err)
	}

	resp, err = spy.Execute(ctx, req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("exhausted script should answer 200, got (%v, %v)", resp, err)
	}
}

func TestSpy_CancelledContext(t *testing.T) {
	spy := NewSpy()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := spy.Execute(ctx, httpclient.Request{Method: http.MethodPost, Path: "x"})
	if !httpclient.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if spy.CallCount() != 1 {
		t.Error("cancelled calls are still recorded")
	}
}

func TestSpy_UnencodableBody(t *testing.T) {
	spy := NewSpy()
	_, err := spy.Execute(context.Background(), httpclient.Request{Method: http.MethodPost, Path: "x", Body: func() {}})
	if !httpclient.IsEncoding(err) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}
