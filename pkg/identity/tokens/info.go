package tokens

import (
	"context"
	"encoding/json"
)

// GetInfo asks the provider for the user profile associated with idToken.
// A nil idToken is reported as missing, a blank one as invalid.
func (c *Client) GetInfo(ctx context.Context, idToken *string) (json.RawMessage, error) {
	req, err := c.tokenInfoRequest(idToken)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, "tokeninfo", req)
}

func (c *Client) tokenInfoRequest(idToken *string) (*Request, error) {
	if err := validateIDToken(idToken); err != nil {
		return nil, err
	}
	return c.newRequest(tokenInfoPath, map[string]interface{}{
		"id_token": *idToken,
	}), nil
}
