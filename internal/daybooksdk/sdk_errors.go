package daybooksdk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"
)

var (
	// sdk common
	ErrNoRefreshToken = errors.New("sdk: refresh token missing")
	ErrNoServerURL    = errors.New("sdk: server url missing")

	// ErrEntryNotFound means the server has no entry for the requested key.
	// Not a failure: the sync policy treats it as push-as-create.
	ErrEntryNotFound = errors.New("sdk: entry not found")

	// ErrUnauthorized means credentials are invalid or expired. The caller
	// must re-authenticate; retrying with the same token will not help.
	ErrUnauthorized = errors.New("sdk: unauthorized")

	// ErrUnreachable means the server could not be reached (DNS, connect,
	// timeout). The run should abort without mutating local state.
	ErrUnreachable = errors.New("sdk: server unreachable")
)

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeAccessDenied   = "E_ACCESS_DENIED"   // access denied
	CodeUnknownError   = "E_UNKNOWN_ERR"     // unknown error

	// Auth errors
	CodeAuthInvalidCredentials = "E_AUTH_INVALID_CREDENTIALS" // credentials are invalid, expired, or malformed
	CodeAuthTokenExpired       = "E_AUTH_TOKEN_EXPIRED"       // access token expired
	CodeAuthRefreshFailed      = "E_AUTH_REFRESH_FAILED"      // refresh token exchange failed

	// Journal errors
	CodeEntryNotFound   = "E_ENTRY_NOT_FOUND"   // no journal entry exists for the requested date
	CodeEntryInvalidKey = "E_ENTRY_INVALID_KEY" // the date key is malformed
	CodeEntryPutFailed  = "E_ENTRY_PUT_FAILED"  // the server failed to store the entry
)

type SDKError interface {
	error
	ErrorCode() string
	ErrorMessage() string
}

// APIError represents a structured error payload from the daybook API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) ErrorCode() string    { return e.Code }
func (e *APIError) ErrorMessage() string { return e.Message }

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

var _ SDKError = (*APIError)(nil)

// handleAPIError maps a response/error pair onto the sdk error taxonomy.
// The mapping is what the sync policy keys its decisions on, so each class
// must stay distinguishable with errors.Is.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("%s: %w: %w", operation, ErrUnreachable, requestErr)
	}

	if !resp.IsErrorState() {
		return nil
	}

	// got a response, but the api returned an error
	apiErr, _ := resp.ErrorResult().(*APIError)

	switch resp.GetStatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		if apiErr != nil {
			return fmt.Errorf("%s: %w: %w", operation, ErrUnauthorized, apiErr)
		}
		return fmt.Errorf("%s: %w", operation, ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", operation, ErrEntryNotFound)
	}

	if apiErr != nil {
		switch apiErr.Code {
		case CodeEntryNotFound:
			return fmt.Errorf("%s: %w", operation, ErrEntryNotFound)
		case CodeAuthInvalidCredentials, CodeAuthTokenExpired, CodeAuthRefreshFailed:
			return fmt.Errorf("%s: %w: %w", operation, ErrUnauthorized, apiErr)
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return fmt.Errorf("%s: api error: %s", operation, resp.String())
}
