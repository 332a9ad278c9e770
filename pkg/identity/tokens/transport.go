package tokens

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/natserract/idtoken/pkg/http"
)

type httpTransport struct {
	client *httpclient.Client
}

// NewHTTPTransport returns a Transport backed by the given HTTP client. Each
// Send makes exactly one attempt; failures are returned as-is.
func NewHTTPTransport(client *httpclient.Client) Transport {
	return &httpTransport{client: client}
}

func (t *httpTransport) Send(ctx context.Context, req *Request) (json.RawMessage, error) {
	resp, err := t.client.Do(httpclient.RequestOptions{
		Method:   req.Method,
		URL:      req.URL,
		Headers:  req.Headers,
		Body:     req.Body,
		Context:  ctx,
		MaxTries: 1,
	})
	if err != nil {
		return nil, err
	}

	// Revocation answers with an empty body.
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("failed to parse response body: invalid JSON from %s", req.URL)
	}
	return json.RawMessage(resp.Body), nil
}
