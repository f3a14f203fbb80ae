package daybooksdk

import "time"

// TokenRequest is the refresh-token exchange payload
type TokenRequest struct {
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
