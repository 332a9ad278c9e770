package tokens

import (
	"encoding/json"
	"fmt"
)

// DelegationRequest is the input of GetDelegationToken. Exactly one of
// IDToken and RefreshToken must be set. Extra holds additional fields that
// are forwarded verbatim; named fields take precedence over Extra.
type DelegationRequest struct {
	ClientID     string
	IDToken      string
	RefreshToken string
	Target       string
	APIType      string
	GrantType    string
	Scope        string
	Extra        map[string]interface{}
}

// RevokeRequest is the input of RevokeRefreshToken. ClientID and
// ClientSecret override the client defaults when set.
type RevokeRequest struct {
	Token        string
	ClientID     string
	ClientSecret string
	Extra        map[string]interface{}
}

// TokenInfo is a typed view of a /tokeninfo response. Fields the provider
// returns beyond these are kept in the raw body only.
type TokenInfo struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Picture       string `json:"picture,omitempty"`
	ClientID      string `json:"clientID,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// DelegationToken is a typed view of a /delegation response.
type DelegationToken struct {
	IDToken   string `json:"id_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// Decode unmarshals a response body into v.
func Decode(body json.RawMessage, v interface{}) error {
	if len(body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}

// String returns a pointer to s, for use with GetInfo.
func String(s string) *string {
	return &s
}
