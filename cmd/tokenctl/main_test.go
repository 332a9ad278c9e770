package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/natserract/idtoken/pkg/config"
	"github.com/natserract/idtoken/pkg/identity/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIDP struct {
	mu       sync.Mutex
	requests []*tokens.Request
}

func (f *fakeIDP) Send(ctx context.Context, req *tokens.Request) (json.RawMessage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	switch {
	case strings.HasSuffix(req.URL, "/tokeninfo"):
		return json.RawMessage(`{"user_id":"auth0|1"}`), nil
	case strings.HasSuffix(req.URL, "/delegation"):
		return json.RawMessage(`{"id_token":"delegated","token_type":"Bearer","expires_in":600}`), nil
	case strings.HasSuffix(req.URL, "/oauth/revoke"):
		if req.Body["token"] == "bad-refresh-token" {
			return nil, errors.New("client error: 400 - invalid_request")
		}
		return nil, nil
	}
	return nil, errors.New("unexpected url " + req.URL)
}

func newTestClient(t *testing.T, idp *fakeIDP) *tokens.Client {
	t.Helper()
	client, err := tokens.New(&tokens.Config{BaseURL: "https://tenant.example.com", ClientID: "c1"},
		tokens.WithTransport(idp))
	require.NoError(t, err)
	return client
}

func TestRun_Info(t *testing.T) {
	idp := &fakeIDP{}
	var out bytes.Buffer

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "info", []string{"abc.def.ghi"}, &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"auth0|1"}`, out.String())
	require.Len(t, idp.requests, 1)
	assert.Equal(t, "abc.def.ghi", idp.requests[0].Body["id_token"])
}

func TestRun_InfoBlankToken(t *testing.T) {
	idp := &fakeIDP{}
	var out bytes.Buffer

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "info", []string{"  "}, &out)
	require.Error(t, err)
	assert.True(t, tokens.IsArgumentError(err))
	assert.Empty(t, idp.requests)
}

func TestRun_Delegate(t *testing.T) {
	idp := &fakeIDP{}
	var out bytes.Buffer

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "delegate",
		[]string{"-refresh-token", "r1", "-target", "target-client", "-api-type", "app"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"id_token": "delegated"`)

	require.Len(t, idp.requests, 1)
	assert.Equal(t, map[string]interface{}{
		"client_id":     "c1",
		"refresh_token": "r1",
		"target":        "target-client",
		"api_type":      "app",
		"grant_type":    "urn:ietf:params:oauth:grant-type:jwt-bearer",
	}, idp.requests[0].Body)
}

func TestRun_DelegateMissingTarget(t *testing.T) {
	idp := &fakeIDP{}

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "delegate",
		[]string{"-id-token", "i", "-api-type", "app"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, "target field is required", err.Error())
}

func TestRun_RevokeBatch(t *testing.T) {
	idp := &fakeIDP{}
	var out bytes.Buffer

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "revoke",
		[]string{"-concurrency", "2", "refresh-token-1", "refresh-token-2", "refresh-token-3"}, &out)
	require.NoError(t, err)
	assert.Len(t, idp.requests, 3)
	assert.Equal(t, 3, strings.Count(out.String(), "REVOKED"))
	assert.NotContains(t, out.String(), "refresh-token-1")
}

func TestRun_RevokeReportsFailures(t *testing.T) {
	idp := &fakeIDP{}
	var out bytes.Buffer

	err := run(context.Background(), newTestClient(t, idp), zap.NewNop(), "revoke",
		[]string{"refresh-token-1", "bad-refresh-token"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_request")
	assert.Len(t, idp.requests, 2)
	assert.Contains(t, out.String(), "REVOKED refres***")
	assert.Contains(t, out.String(), "FAILED  bad-re***")
}

func TestHelpNeedsNoConfiguration(t *testing.T) {
	t.Setenv("IDP_BASE_URL", "")

	for _, command := range []string{"help", "-h", "--help"} {
		assert.True(t, isHelp(command), command)

		var out bytes.Buffer
		require.NoError(t, run(context.Background(), nil, zap.NewNop(), command, nil, &out))
		assert.Contains(t, out.String(), "Usage: tokenctl")
	}
	assert.False(t, isHelp("info"))
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), newTestClient(t, &fakeIDP{}), zap.NewNop(), "introspect", nil, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewTokensClient(t *testing.T) {
	client, err := newTokensClient(&config.Config{
		BaseURL:  "https://tenant.example.com",
		ClientID: "c1",
		Headers:  map[string]string{"X-Tenant": "acme"},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "c1", client.ClientID())
	assert.Equal(t, map[string]string{"X-Tenant": "acme"}, client.Headers())

	_, err = newTokensClient(&config.Config{}, zap.NewNop())
	assert.True(t, tokens.IsArgumentError(err))
}
