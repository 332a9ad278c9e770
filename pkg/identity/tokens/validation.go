package tokens

import "strings"

func isPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

func validateIDToken(idToken *string) error {
	if idToken == nil {
		return newArgumentError("An ID token is required")
	}
	if !isPresent(*idToken) {
		return newArgumentError("The ID token is not valid")
	}
	return nil
}

func validateDelegation(data *DelegationRequest) error {
	if data == nil {
		return newArgumentError("Missing token data object")
	}

	hasIDToken := isPresent(data.IDToken)
	hasRefreshToken := isPresent(data.RefreshToken)
	if !hasIDToken && !hasRefreshToken {
		return newArgumentError("one of id_token or refresh_token is required")
	}
	if hasIDToken && hasRefreshToken {
		return newArgumentError("id_token and refresh_token fields cannot be specified simulatenously")
	}

	if !isPresent(data.Target) {
		return newArgumentError("target field is required")
	}
	if !isPresent(data.APIType) {
		return newArgumentError("api_type field is required")
	}
	if !isPresent(data.GrantType) {
		return newArgumentError("grant_type field is required")
	}
	return nil
}

func validateRevoke(data *RevokeRequest, defaultClientID string) error {
	if data == nil {
		return newArgumentError("Missing token data object")
	}
	if !isPresent(data.Token) {
		return newArgumentError("token property is required")
	}
	if !isPresent(data.ClientID) && defaultClientID == "" {
		return newArgumentError("Neither token data client_id property or constructor clientId property has been set")
	}
	return nil
}
