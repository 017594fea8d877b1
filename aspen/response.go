package aspen

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/kbukum/aspen/errors"
	"github.com/kbukum/aspen/httpclient"
)

// Response is the result of a successful call.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// RequestID is the X-PRO-Request-Id the call was sent with.
	RequestID string
}

func newResponse(resp *httpclient.Response) *Response {
	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// Header returns the named response header, or "".
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// Decode parses the response body into T. An empty body yields the zero
// value; malformed JSON is a SERIALIZATION_FAILURE.
func Decode[T any](r *Response) (T, error) {
	var out T
	if r == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return out, errors.SerializationFailure("decode response body", err)
	}
	return out, nil
}
