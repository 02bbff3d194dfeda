package pusher

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	transport      Transport
	httpClient     *http.Client
	timeout        time.Duration
	scheme         string
	host           string
	userAgent      string
	clock          Clock
	logger         zerolog.Logger
	tracerProvider trace.TracerProvider
	fanOutLimit    int
}

// WithTransport replaces the HTTP transport entirely. Host, scheme, timeout and
// HTTP client options are ignored when a transport is given.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHost sets the API host, e.g. api-eu.pusher.com.
func WithHost(host string) Option {
	return func(o *clientOptions) {
		o.host = host
	}
}

// WithScheme sets http or https.
func WithScheme(scheme string) Option {
	return func(o *clientOptions) {
		o.scheme = scheme
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithClock sets the time source used for auth_timestamp.
func WithClock(clock Clock) Option {
	return func(o *clientOptions) {
		o.clock = clock
	}
}

// WithLogger enables debug logging of requests. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry provider; the global one is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) {
		o.tracerProvider = tp
	}
}

// WithFanOutLimit caps how many chunks TriggerMany sends at once.
func WithFanOutLimit(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.fanOutLimit = n
		}
	}
}
