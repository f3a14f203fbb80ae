package daybooksdk

import (
	"context"

	"github.com/imroc/req/v3"
)

// DaybookSDK is the client for the daybook journal API
type DaybookSDK struct {
	client  *req.Client
	baseURL string
	Journal *JournalAPI
}

// New creates a new DaybookSDK client for the given server
func New(baseURL string) (*DaybookSDK, error) {
	if baseURL == "" {
		return nil, ErrNoServerURL
	}

	client := newHTTPClient().SetBaseURL(baseURL)

	return &DaybookSDK{
		client:  client,
		baseURL: baseURL,
		Journal: newJournalAPI(client),
	}, nil
}

// Login exchanges the stored refresh token for an access token and
// installs it on the client for subsequent API calls.
func (s *DaybookSDK) Login(ctx context.Context, email, refreshToken string) error {
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	token, err := ExchangeToken(ctx, s.baseURL, &TokenRequest{
		Email:        email,
		RefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}

	s.client.SetCommonBearerAuthToken(token.AccessToken)
	s.client.SetCommonHeader(HeaderDaybookUser, email)
	return nil
}

// Close releases the underlying transport resources
func (s *DaybookSDK) Close() {
	s.client.CloseIdleConnections()
}
