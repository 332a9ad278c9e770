package tokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeRefreshToken_Validation(t *testing.T) {
	client, transport := newTestClient(t, &Config{BaseURL: "https://tenant.example.com"}, ``)
	ctx := context.Background()

	_, err := client.RevokeRefreshToken(ctx, nil)
	requireArgumentError(t, err, "Missing token data object")

	_, err = client.RevokeRefreshToken(ctx, &RevokeRequest{})
	requireArgumentError(t, err, "token property is required")

	_, err = client.RevokeRefreshToken(ctx, &RevokeRequest{Token: "   "})
	requireArgumentError(t, err, "token property is required")

	_, err = client.RevokeRefreshToken(ctx, &RevokeRequest{Token: "r"})
	requireArgumentError(t, err, "Neither token data client_id property or constructor clientId property has been set")

	_, err = client.RevokeRefreshToken(ctx, &RevokeRequest{Token: "r", ClientID: "  "})
	requireArgumentError(t, err, "Neither token data client_id property or constructor clientId property has been set")

	assert.Empty(t, transport.calls())
}

func TestRevokeRefreshToken_DefaultClientID(t *testing.T) {
	cfg := &Config{BaseURL: "https://tenant.example.com", ClientID: "c1"}
	client, transport := newTestClient(t, cfg, ``)

	body, err := client.RevokeRefreshToken(context.Background(), &RevokeRequest{Token: "r"})
	require.NoError(t, err)
	assert.Empty(t, body)

	calls := transport.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, MethodPost, calls[0].Method)
	assert.Equal(t, "https://tenant.example.com/oauth/revoke", calls[0].URL)
	assert.Equal(t, map[string]interface{}{
		"client_id":     "c1",
		"client_secret": "",
		"token":         "r",
	}, calls[0].Body)
}

func TestRevokeRefreshToken_CallerCredentialsWin(t *testing.T) {
	cfg := &Config{BaseURL: "https://tenant.example.com", ClientID: "c1", ClientSecret: "s1"}
	client, transport := newTestClient(t, cfg, ``)

	_, err := client.RevokeRefreshToken(context.Background(), &RevokeRequest{
		Token:        "r",
		ClientID:     "c2",
		ClientSecret: "s2",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"client_id":     "c2",
		"client_secret": "s2",
		"token":         "r",
	}, transport.calls()[0].Body)
}

func TestRevokeRefreshToken_CallerClientIDOnly(t *testing.T) {
	client, transport := newTestClient(t, &Config{BaseURL: "https://tenant.example.com", ClientSecret: "s1"}, ``)

	_, err := client.RevokeRefreshToken(context.Background(), &RevokeRequest{
		Token:    "r",
		ClientID: "c2",
		Extra:    map[string]interface{}{"token": "ignored", "reason": "logout"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"client_id":     "c2",
		"client_secret": "s1",
		"token":         "r",
		"reason":        "logout",
	}, transport.calls()[0].Body)
}
