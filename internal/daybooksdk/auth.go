package daybooksdk

import (
	"context"
)

const (
	v1AuthToken = "/api/v1/auth/token"
)

// ExchangeToken trades an email + refresh token for a short-lived access token.
// Uses a one-off client because it runs before the SDK is authenticated.
func ExchangeToken(ctx context.Context, serverURL string, tokenReq *TokenRequest) (apiResp *TokenResponse, err error) {
	client := newHTTPClient().SetBaseURL(serverURL)

	resp, err := client.R().
		SetContext(ctx).
		SetBody(tokenReq).
		SetSuccessResult(&apiResp).
		Post(v1AuthToken)

	if err := handleAPIError(resp, err, "auth token exchange"); err != nil {
		return nil, err
	}

	return apiResp, nil
}
