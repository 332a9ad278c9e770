package tokens

import (
	"context"
	"encoding/json"
	"net/http"
)

// MethodPost is the method used by every token endpoint.
const MethodPost = http.MethodPost

// Request describes a single call to a token endpoint.
type Request struct {
	Method  string
	URL     string
	Body    map[string]interface{}
	Headers map[string]string
}

// Transport sends a request and returns the response body, or the error that
// prevented a successful response.
type Transport interface {
	Send(ctx context.Context, req *Request) (json.RawMessage, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (json.RawMessage, error)

func (f TransportFunc) Send(ctx context.Context, req *Request) (json.RawMessage, error) {
	return f(ctx, req)
}

// TokensClient defines the interface for token endpoint operations
type TokensClient interface {
	// GetInfo resolves an ID token to its user profile
	GetInfo(ctx context.Context, idToken *string) (json.RawMessage, error)

	// GetDelegationToken exchanges an ID or refresh token for a delegation token
	GetDelegationToken(ctx context.Context, data *DelegationRequest) (json.RawMessage, error)

	// RevokeRefreshToken invalidates a refresh token
	RevokeRefreshToken(ctx context.Context, data *RevokeRequest) (json.RawMessage, error)

	// GetInfoAsync starts GetInfo and delivers its outcome to cb, or to the
	// returned Future when cb is nil
	GetInfoAsync(ctx context.Context, idToken *string, cb Callback) (*Future, error)

	// GetDelegationTokenAsync starts GetDelegationToken; delivery as for GetInfoAsync
	GetDelegationTokenAsync(ctx context.Context, data *DelegationRequest, cb Callback) (*Future, error)

	// RevokeRefreshTokenAsync starts RevokeRefreshToken; delivery as for GetInfoAsync
	RevokeRefreshTokenAsync(ctx context.Context, data *RevokeRequest, cb Callback) (*Future, error)
}

var _ TokensClient = (*Client)(nil)
