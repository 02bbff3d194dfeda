package pusher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/s0up4200/pusharr/pusher"

// Client represents a Pusher REST API client.
// It holds no mutable state, so one Client can serve concurrent calls.
type Client struct {
	creds       Credentials
	signer      *Signer
	transport   Transport
	tracer      trace.Tracer
	logger      zerolog.Logger
	fanOutLimit int
}

// NewClient creates a new Pusher client. Credentials are used as given, without validation.
func NewClient(creds Credentials, opts ...Option) *Client {
	o := clientOptions{
		timeout:     DefaultTimeout,
		scheme:      DefaultScheme,
		host:        DefaultHost,
		userAgent:   DefaultUserAgent,
		logger:      zerolog.Nop(),
		fanOutLimit: 4,
	}
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = defaultHTTPClient(o.timeout)
		}
		t := NewHTTPTransport(o.scheme, o.host, httpClient)
		t.userAgent = o.userAgent
		transport = t
	}

	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{
		creds:       creds,
		signer:      NewSigner(creds.Key, creds.Secret, o.clock),
		transport:   transport,
		tracer:      tp.Tracer(tracerName),
		logger:      o.logger,
		fanOutLimit: o.fanOutLimit,
	}
}

// AppID returns the application id requests are sent for
func (c *Client) AppID() string {
	return c.creds.AppID
}

// Credentials returns the credentials the client was built with
func (c *Client) Credentials() Credentials {
	return c.creds
}

// Signer returns the signer bound to the client's key pair
func (c *Client) Signer() *Signer {
	return c.signer
}

// Do signs req, sends it and interprets the response.
// req itself is left untouched.
func (c *Client) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	_, raw, err := c.roundTrip(ctx, req)
	return raw, err
}

// roundTrip is Do that also reports the response status
func (c *Client) roundTrip(ctx context.Context, req *Request) (int, json.RawMessage, error) {
	signed := req.Clone()
	c.signer.SignRequest(signed)

	ctx, span := c.tracer.Start(ctx, "pusher.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", signed.Method),
			attribute.String("url.path", signed.Path),
			attribute.String("pusher.app_id", c.creds.AppID),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.transport.Do(ctx, signed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Debug().
			Err(err).
			Str("method", signed.Method).
			Str("path", signed.Path).
			Msg("Pusher request failed")
		return 0, nil, &TransportError{Method: signed.Method, Path: signed.Path, Err: err}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	c.logger.Debug().
		Str("method", signed.Method).
		Str("path", signed.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Pusher request completed")

	raw, err := Interpret(resp.StatusCode, resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, raw, nil
}

// do runs req through Do and decodes the success body into v
func (c *Client) do(ctx context.Context, req *Request, v any) error {
	status, raw, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	return decodeInto(status, raw, v)
}

// Trigger publishes an event on up to MaxChannelsPerEvent channels
func (c *Client) Trigger(ctx context.Context, ev Event) (*TriggerResult, error) {
	req, err := NewTriggerRequest(c.creds.AppID, ev)
	if err != nil {
		return nil, err
	}

	var result TriggerResult
	if err := c.do(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("failed to trigger %q: %w", ev.Name, err)
	}

	return &result, nil
}

// GetChannels lists occupied channels, optionally filtered by prefix
func (c *Client) GetChannels(ctx context.Context, p ChannelsParams) (*ChannelsResponse, error) {
	var result ChannelsResponse
	if err := c.do(ctx, NewChannelsRequest(c.creds.AppID, p), &result); err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}

	if result.Channels == nil {
		result.Channels = map[string]ChannelAttributes{}
	}

	c.logger.Debug().
		Str("prefix", p.FilterByPrefix).
		Int("count", len(result.Channels)).
		Msg("Retrieved channels from Pusher")

	return &result, nil
}

// GetChannel fetches the state of a single channel
func (c *Client) GetChannel(ctx context.Context, name string, info ...string) (*ChannelInfo, error) {
	var result ChannelInfo
	if err := c.do(ctx, NewChannelRequest(c.creds.AppID, name, info), &result); err != nil {
		return nil, fmt.Errorf("failed to get channel %q: %w", name, err)
	}
	return &result, nil
}

// GetUsers lists the users subscribed to a presence channel
func (c *Client) GetUsers(ctx context.Context, channel string) (*UsersResponse, error) {
	req, err := NewUsersRequest(c.creds.AppID, channel)
	if err != nil {
		return nil, err
	}

	var result UsersResponse
	if err := c.do(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("failed to get users of %q: %w", channel, err)
	}

	return &result, nil
}
