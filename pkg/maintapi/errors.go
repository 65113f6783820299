package maintapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned when the server reports success on a call
// that should grant a token but the response carries none. The attempt
// failed; the caller may retry with a fresh code.
var ErrMissingToken = errors.New("maintapi: success response without a token")

// APIError represents a rejection from the OCP API: the request completed
// but the server said no. Message is the server-supplied human-readable
// text when one was present in the body.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// StepUpRequiredError is returned by SignIn when the account has two-factor
// authentication enabled. It carries the server-issued challenge that must
// be redeemed with a one-time code before a session is granted.
//
// The challenge lives only in memory; if it is dropped the sign-in flow
// must restart from credentials.
type StepUpRequiredError struct {
	// SessionID is the opaque server-issued challenge reference.
	SessionID string

	// Email is the address that signed in, carried along because the
	// verification response does not echo it back.
	Email string

	// Role is the role reported at sign-in time. The verification
	// response may override it.
	Role string
}

// Error implements the error interface.
func (e *StepUpRequiredError) Error() string {
	return fmt.Sprintf("two-factor step-up required for %s", e.Email)
}

// parseAPIError turns a non-2xx response body into a typed *APIError.
// The OCP backend reports failures as {"message": "..."}; anything else
// falls back to the HTTP status text.
func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err == nil && apiErr.Message != "" {
		return apiErr
	}
	apiErr.Message = http.StatusText(statusCode)
	return apiErr
}
