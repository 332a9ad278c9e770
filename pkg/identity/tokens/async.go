package tokens

import (
	"context"
	"encoding/json"
)

// Callback receives the outcome of an Async operation: the response body on
// success, or a non-nil error.
type Callback func(body json.RawMessage, err error)

// Future holds the outcome of an Async operation that was started without a
// Callback. It settles exactly once.
type Future struct {
	done chan struct{}
	body json.RawMessage
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) settle(body json.RawMessage, err error) {
	f.body, f.err = body, err
	close(f.done)
}

// Done is closed once the outcome is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the outcome is available or ctx is done. Cancelling ctx
// only stops the wait; the request keeps its own context.
func (f *Future) Wait(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-f.done:
		return f.body, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled reports whether the outcome is available.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// GetInfoAsync is the asynchronous form of GetInfo.
//
// Invalid arguments are returned immediately and nothing is started.
// Otherwise, with a nil cb the outcome is delivered through the returned
// Future; with a non-nil cb the Future is nil and cb is called exactly once.
func (c *Client) GetInfoAsync(ctx context.Context, idToken *string, cb Callback) (*Future, error) {
	req, err := c.tokenInfoRequest(idToken)
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, "tokeninfo", req, cb), nil
}

// GetDelegationTokenAsync is the asynchronous form of GetDelegationToken. See
// GetInfoAsync for the delivery rules.
func (c *Client) GetDelegationTokenAsync(ctx context.Context, data *DelegationRequest, cb Callback) (*Future, error) {
	req, err := c.delegationRequest(data)
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, "delegation", req, cb), nil
}

// RevokeRefreshTokenAsync is the asynchronous form of RevokeRefreshToken. See
// GetInfoAsync for the delivery rules.
func (c *Client) RevokeRefreshTokenAsync(ctx context.Context, data *RevokeRequest, cb Callback) (*Future, error) {
	req, err := c.revokeRequest(data)
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, "revoke", req, cb), nil
}

// dispatch sends an already validated request on its own goroutine.
func (c *Client) dispatch(ctx context.Context, op string, req *Request, cb Callback) *Future {
	if ctx == nil {
		ctx = context.Background()
	}

	if cb != nil {
		go func() {
			cb(c.send(ctx, op, req))
		}()
		return nil
	}

	f := newFuture()
	go func() {
		f.settle(c.send(ctx, op, req))
	}()
	return f
}
