package maintapi

import (
	"context"
	"net/http"
)

// signInRequest is the POST /auth/signin body. The backend names the
// identifier field "email" even though callers may present it as a username.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session token.
//
// Outcomes:
//   - direct success: returns *SignInSuccess
//   - account has 2FA enabled: returns *StepUpRequiredError carrying the
//     challenge; redeem it with VerifyTwoFactor
//   - rejection: returns *APIError with the server's message
//   - 2xx body missing the expected fields: returns *APIError with the
//     body's message, or a generic one when the server supplied none
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInSuccess, error) {
	var resp signInResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/signin", "",
		signInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.TwoFactorAuthEnabled {
		return nil, &StepUpRequiredError{
			SessionID: resp.Session,
			Email:     email,
			Role:      resp.Role,
		}
	}

	if resp.Status && resp.JWT != "" {
		return &SignInSuccess{Token: resp.JWT, Role: resp.Role}, nil
	}

	// 2xx but not a recognisable success: the backend uses this shape for
	// soft failures like a disabled account.
	msg := resp.Message
	if msg == "" {
		msg = "Login failed"
	}
	return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
}
