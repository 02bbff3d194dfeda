package pusher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// Defaults for the HTTP transport
const (
	DefaultScheme    = "https"
	DefaultHost      = "api.pusherapp.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pusharr"
)

// Response is the raw answer of a transport round trip
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a signed request and returns the raw response.
// Implementations must be safe for concurrent use if the client is shared.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req)
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport sends requests over net/http
type HTTPTransport struct {
	scheme     string
	host       string
	userAgent  string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport for scheme://host. A nil httpClient gets a pooled
// client from go-cleanhttp with DefaultTimeout.
func NewHTTPTransport(scheme, host string, httpClient *http.Client) *HTTPTransport {
	if scheme == "" {
		scheme = DefaultScheme
	}
	if host == "" {
		host = DefaultHost
	}
	if httpClient == nil {
		httpClient = defaultHTTPClient(DefaultTimeout)
	}

	return &HTTPTransport{
		scheme:     scheme,
		host:       host,
		userAgent:  DefaultUserAgent,
		httpClient: httpClient,
	}
}

// BaseURL returns scheme://host
func (t *HTTPTransport) BaseURL() string {
	return t.scheme + "://" + t.host
}

// Do performs the HTTP round trip. Auth parameters travel in the query string only.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	query := make(url.Values, len(req.Query))
	for k, v := range req.Query {
		query.Set(k, v)
	}

	u := url.URL{
		Scheme:   t.scheme,
		Host:     t.host,
		Path:     req.Path,
		RawQuery: query.Encode(),
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = timeout
	return c
}
