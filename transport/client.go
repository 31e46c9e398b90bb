package transport

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/foodhub/foodhub-go/core"
)

// Options configures the HTTP client stack.
type Options struct {
	// Timeout is the fixed per-request timeout. Zero means the default.
	Timeout time.Duration

	// Tokens supplies the bearer credential per request. Required.
	Tokens TokenSource

	// Storage is cleared on an intercepted 401. Optional.
	Storage core.Storage

	// Navigator supplies the current surface and receives the post-401
	// redirect. Optional.
	Navigator core.Navigator

	// Logger for interception events. Optional.
	Logger core.Logger

	// Metrics counters. Optional; nil records nothing.
	Metrics *Metrics

	// Tracing wraps the base transport with otelhttp instrumentation.
	Tracing bool

	// Base overrides the underlying RoundTripper (tests). Optional.
	Base http.RoundTripper
}

// DefaultTimeout is the fixed request timeout when none is configured.
const DefaultTimeout = 15 * time.Second

// NewClient builds the http.Client the API layer uses: base transport,
// optional otel instrumentation, then auth/interception on the outside so
// the bearer header is present on the traced request.
func NewClient(opts Options) *http.Client {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if opts.Tracing {
		base = otelhttp.NewTransport(base)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &AuthTransport{
			Base:      base,
			Tokens:    opts.Tokens,
			Storage:   opts.Storage,
			Navigator: opts.Navigator,
			Logger:    opts.Logger,
			Metrics:   opts.Metrics,
		},
	}
}
