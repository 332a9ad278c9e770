// Package tokens provides a client for the token endpoints of a remote
// identity provider.
//
// Three operations are supported:
//   - GetInfo resolves an ID token to the user profile it belongs to (/tokeninfo)
//   - GetDelegationToken exchanges an ID or refresh token for a token issued
//     to another client (/delegation)
//   - RevokeRefreshToken invalidates a previously issued refresh token
//     (/oauth/revoke)
//
// Each operation validates its arguments before any I/O and reports invalid
// input as an *ArgumentError. Valid calls issue exactly one POST request and
// return the response body untouched. The blocking methods are the core API;
// the Async variants deliver the same outcome through a Future or a Callback.
package tokens

import (
	"context"
	"encoding/json"

	httpclient "github.com/natserract/idtoken/pkg/http"
	"go.uber.org/zap"
)

const (
	tokenInfoPath  = "/tokeninfo"
	delegationPath = "/delegation"
	revokePath     = "/oauth/revoke"
)

// Config is the base configuration of a Client.
type Config struct {
	// BaseURL is prepended verbatim to every endpoint path (required)
	BaseURL string

	// Headers are sent with every request
	Headers map[string]string

	// ClientID is the default client_id for delegation and revocation
	ClientID string

	// ClientSecret is the default client_secret for revocation
	ClientSecret string
}

// Client is the token operations client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	headers      map[string]string
	clientID     string
	clientSecret string
	transport    Transport
	logger       *zap.Logger
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient sends requests through the given HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) {
		c.transport = NewHTTPTransport(hc)
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new Client. The configuration is copied, so later changes to
// cfg or its Headers map do not affect the client.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, newArgumentError("Must provide client options")
	}
	if cfg.BaseURL == "" {
		return nil, newArgumentError("Must provide a base URL for the API")
	}

	c := &Client{
		baseURL:      cfg.BaseURL,
		headers:      httpclient.CloneHeaders(cfg.Headers),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(httpclient.NewClientWithLogger(c.logger))
	}

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Headers returns a copy of the default headers.
func (c *Client) Headers() map[string]string {
	return httpclient.CloneHeaders(c.headers)
}

// ClientID returns the default client identifier.
func (c *Client) ClientID() string {
	return c.clientID
}

// ClientSecret returns the default client secret.
func (c *Client) ClientSecret() string {
	return c.clientSecret
}

// newRequest builds a POST descriptor for path with a private copy of the
// default headers.
func (c *Client) newRequest(path string, body map[string]interface{}) *Request {
	return &Request{
		Method:  MethodPost,
		URL:     httpclient.JoinURL(c.baseURL, path),
		Body:    body,
		Headers: httpclient.CloneHeaders(c.headers),
	}
}

// send performs the single transport call for req and passes the outcome
// through unchanged.
func (c *Client) send(ctx context.Context, op string, req *Request) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.logger.Debug("Sending token request", zap.String("operation", op), zap.String("url", req.URL))

	body, err := c.transport.Send(ctx, req)
	if err != nil {
		c.logger.Error("Token request failed", zap.String("operation", op), zap.Error(err))
		return nil, err
	}

	c.logger.Info("Token request succeeded", zap.String("operation", op), zap.Int("body_bytes", len(body)))
	return body, nil
}
