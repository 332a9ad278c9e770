package tokens

import (
	"context"
	"encoding/json"
)

// GetDelegationToken exchanges the ID or refresh token in data for a token
// issued to data.Target.
func (c *Client) GetDelegationToken(ctx context.Context, data *DelegationRequest) (json.RawMessage, error) {
	req, err := c.delegationRequest(data)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, "delegation", req)
}

func (c *Client) delegationRequest(data *DelegationRequest) (*Request, error) {
	if err := validateDelegation(data); err != nil {
		return nil, err
	}
	return c.newRequest(delegationPath, c.delegationBody(data)), nil
}

// delegationBody layers, lowest precedence first: the default client_id,
// data.Extra, then every named field the caller set.
func (c *Client) delegationBody(data *DelegationRequest) map[string]interface{} {
	body := map[string]interface{}{
		"client_id": c.clientID,
	}
	for k, v := range data.Extra {
		body[k] = v
	}

	setIfPresent(body, "client_id", data.ClientID)
	setIfPresent(body, "id_token", data.IDToken)
	setIfPresent(body, "refresh_token", data.RefreshToken)
	setIfPresent(body, "target", data.Target)
	setIfPresent(body, "api_type", data.APIType)
	setIfPresent(body, "grant_type", data.GrantType)
	setIfPresent(body, "scope", data.Scope)

	return body
}

// setIfPresent stores value under key unless value is the empty string.
// Values are sent as given, whitespace included.
func setIfPresent(body map[string]interface{}, key, value string) {
	if value != "" {
		body[key] = value
	}
}
