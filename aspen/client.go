package aspen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/aspen/httpclient"
	"github.com/kbukum/aspen/logger"
	"github.com/kbukum/aspen/observability"
	"github.com/kbukum/aspen/provider"
)

// Transport is the contract the client executes requests against.
// httpclient.Adapter is the production implementation.
type Transport = provider.RequestResponse[httpclient.Request, *httpclient.Response]

// Middleware decorates the transport.
type Middleware = provider.Middleware[httpclient.Request, *httpclient.Response]

// Option configures a Client.
type Option func(*options)

type options struct {
	transport  Transport
	log        *logger.Logger
	metrics    *observability.Metrics
	middleware []Middleware
	now        func() time.Time
	nonce      func() string
}

// WithTransport replaces the HTTP transport built from Config.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records request and transport metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithMiddleware wraps the transport. The first middleware is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// WithClock sets the clock used for payload epochs.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithNonceSource sets the generator of payload nonces and request IDs.
func WithNonceSource(next func() string) Option {
	return func(o *options) { o.nonce = next }
}

// Client issues requests to the Aspen service under a fixed identity.
// It is safe for concurrent use.
type Client struct {
	ctx       *Context
	routes    RouteTable
	transport Transport
	pipeline  provider.RequestResponse[dispatch, *Response]
	signer    signer
	newID     func() string
	metrics   *observability.Metrics
	log       *logger.Logger
}

// New creates a client from cfg. Without WithTransport an httpclient.Adapter
// is built from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		log:   logger.NewNop(),
		now:   time.Now,
		nonce: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		adapter, err := httpclient.New(cfg.httpConfig(), httpclient.WithLogger(o.log))
		if err != nil {
			return nil, err
		}
		transport = adapter
	}

	chain := append([]Middleware{}, o.middleware...)
	chain = append(chain,
		provider.WithLogging[httpclient.Request, *httpclient.Response](o.log.WithComponent("transport")),
		provider.WithTracing[httpclient.Request, *httpclient.Response](observability.SpanTransport),
	)
	if o.metrics != nil {
		chain = append(chain, provider.WithMetrics[httpclient.Request, *httpclient.Response](o.metrics))
	}

	c := &Client{
		ctx:       newContext(&cfg),
		routes:    Routes(),
		transport: transport,
		signer:    signer{now: o.now, nonce: o.nonce},
		newID:     o.nonce,
		metrics:   o.metrics,
		log:       o.log.WithComponent("aspen"),
	}
	c.pipeline = provider.Adapt[dispatch, *Response, httpclient.Request, *httpclient.Response](
		provider.Chain(chain...)(transport), "aspen", c.signer.encode, decode,
	)
	return c, nil
}

// withContext returns a client sharing c's transport under another identity.
func (c *Client) withContext(ctx *Context) *Client {
	next := *c
	next.ctx = ctx
	return &next
}

// Context returns the identity requests are issued under.
func (c *Client) Context() *Context { return c.ctx }

// IsAvailable reports whether the transport is accepting requests.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.pipeline.IsAvailable(ctx)
}

// Close releases transport resources. Clients derived through sign-in share
// the transport, so close only the last one in use.
func (c *Client) Close(ctx context.Context) error {
	return provider.Close(ctx, c.transport)
}
