package maintapi

import (
	"context"
	"net/http"
	"net/url"
)

// sendResetOTPRequest is the body of the reset-password send-otp endpoint.
// VerificationType is always EMAIL; the backend models other channels but
// the client never uses them.
type sendResetOTPRequest struct {
	SendTo           string `json:"sendTo"`
	VerificationType string `json:"verificationType"`
}

// completeResetRequest carries the one-time code and the replacement
// password for the final reset step.
type completeResetRequest struct {
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// SendResetOTP starts a password reset by asking the server to email a
// one-time code. The returned challenge authorizes exactly one
// CompleteReset call and is held in memory only.
func (c *Client) SendResetOTP(ctx context.Context, email string) (*ResetChallenge, error) {
	var resp resetOTPResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/users/reset-password/send-otp", "",
		sendResetOTPRequest{SendTo: email, VerificationType: "EMAIL"}, &resp)
	if err != nil {
		return nil, err
	}

	return &ResetChallenge{SessionID: resp.Session, ResetToken: resp.JWT}, nil
}

// CompleteReset redeems a reset challenge: the emailed code plus the new
// password, authenticated with the reset-scoped token rather than a login
// session. Success is any 2xx; the response body is not required.
func (c *Client) CompleteReset(ctx context.Context, ch ResetChallenge, otp, newPassword string) error {
	path := "/auth/users/reset-password/verify-otp?id=" + url.QueryEscape(ch.SessionID)
	return c.doJSON(ctx, http.MethodPatch, path, ch.ResetToken,
		completeResetRequest{OTP: otp, Password: newPassword}, nil)
}
