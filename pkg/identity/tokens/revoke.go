package tokens

import (
	"context"
	"encoding/json"
)

// RevokeRefreshToken invalidates the refresh token in data. A client_id must
// come from either data or the client configuration.
func (c *Client) RevokeRefreshToken(ctx context.Context, data *RevokeRequest) (json.RawMessage, error) {
	req, err := c.revokeRequest(data)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, "revoke", req)
}

func (c *Client) revokeRequest(data *RevokeRequest) (*Request, error) {
	if err := validateRevoke(data, c.clientID); err != nil {
		return nil, err
	}
	return c.newRequest(revokePath, c.revokeBody(data)), nil
}

func (c *Client) revokeBody(data *RevokeRequest) map[string]interface{} {
	body := map[string]interface{}{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}
	for k, v := range data.Extra {
		body[k] = v
	}

	setIfPresent(body, "client_id", data.ClientID)
	setIfPresent(body, "client_secret", data.ClientSecret)
	body["token"] = data.Token

	return body
}
