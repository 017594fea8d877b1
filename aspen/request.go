package aspen

import (
	"fmt"
	"net/http"
)

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Request describes one pending call. It is built per operation and never
// modified.
type Request struct {
	ctx    *Context
	route  Route
	method string
	body   any
}

// newRequest builds a request issued under c. The body is kept as given and
// encoded by the transport. A zero route or an unsupported method is a
// programming error.
func newRequest(c *Context, route Route, method string, body any) *Request {
	if c == nil {
		panic("aspen: request built without a context")
	}
	if route.IsZero() {
		panic("aspen: request built with a zero route")
	}
	if !supportedMethods[method] {
		panic(fmt.Sprintf("aspen: unsupported method %q for %s", method, route))
	}
	return &Request{ctx: c, route: route, method: method, body: body}
}

// Context returns the identity the request is issued under.
func (r *Request) Context() *Context { return r.ctx }

// Route returns the target endpoint.
func (r *Request) Route() Route { return r.route }

// Method returns the HTTP method.
func (r *Request) Method() string { return r.method }

// Body returns the request body, or nil.
func (r *Request) Body() any { return r.body }

func (r *Request) String() string { return r.method + " " + r.route.path }
