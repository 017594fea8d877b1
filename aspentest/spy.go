package aspentest

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"sync"

	"github.com/kbukum/aspen/httpclient"
	"github.com/kbukum/aspen/provider"
)

// Call is one request observed by a Spy. Body holds the JSON encoding of the
// request body, or nil when the request had none.
type Call struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    []byte
}

// Reply is a scripted outcome for one Spy call. A Response with a non-2xx
// status and no Err is classified the way httpclient.Adapter does it.
type Reply struct {
	Response *httpclient.Response
	Err      error
}

// OK returns a 200 reply with the given JSON body.
func OK(body string) Reply {
	return Status(http.StatusOK, body)
}

// Status returns a reply with the given status and body.
func Status(code int, body string) Reply {
	resp := &httpclient.Response{
		StatusCode: code,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
	if body != "" {
		resp.Body = []byte(body)
	}
	return Reply{Response: resp}
}

// Fail returns a reply that fails with err before any response arrives.
func Fail(err error) Reply {
	return Reply{Err: err}
}

// Spy is a recording transport. Replies are consumed in order; once the
// script is exhausted every call answers with an empty 200.
type Spy struct {
	mu      sync.Mutex
	calls   []Call
	replies []Reply
}

var _ provider.RequestResponse[httpclient.Request, *httpclient.Response] = (*Spy)(nil)

// NewSpy creates a Spy with the given scripted replies.
func NewSpy(replies ...Reply) *Spy {
	return &Spy{replies: replies}
}

// Script appends replies to the script.
func (s *Spy) Script(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

// Calls returns a copy of the recorded calls.
func (s *Spy) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (s *Spy) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// LastCall returns the most recent call, or false when none was made.
func (s *Spy) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

// Reset clears recorded calls and pending replies.
func (s *Spy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.replies = nil
}

// Name implements provider.Provider.
func (s *Spy) Name() string { return "spy" }

// IsAvailable implements provider.Provider.
func (s *Spy) IsAvailable(_ context.Context) bool { return true }

// Execute records req and returns the next scripted reply.
func (s *Spy) Execute(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	call := Call{
		Method:  req.Method,
		Path:    req.Path,
		Headers: maps.Clone(req.Headers),
	}
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, httpclient.NewEncodingError("encode body", err)
		}
		call.Body = data
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	reply := Reply{Response: &httpclient.Response{StatusCode: http.StatusOK}}
	if len(s.replies) > 0 {
		reply = s.replies[0]
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, httpclient.NewTimeoutError(err)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	if classErr := httpclient.ClassifyStatusCode(reply.Response.StatusCode, reply.Response.Body); classErr != nil {
		return reply.Response, classErr
	}
	return reply.Response, nil
}
