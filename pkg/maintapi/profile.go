package maintapi

import (
	"context"
	"net/http"
	"net/url"
)

// Profile fetches the authenticated user's server profile. Token is a live
// session JWT.
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var resp profileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/profile", token, nil, &resp); err != nil {
		return nil, err
	}

	return &Profile{
		Email:            resp.Email,
		FullName:         resp.FullName,
		Role:             resp.Role,
		TwoFactorEnabled: resp.TwoFactorAuth.Enabled,
	}, nil
}

// SendVerificationOTP asks the server to email a one-time code to the
// authenticated user, as the first half of enabling or disabling
// two-factor authentication.
func (c *Client) SendVerificationOTP(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/users/verification/EMAIL/send-otp", token, nil, nil)
}

// EnableTwoFactor turns on two-factor authentication for the authenticated
// user, verified by the emailed code.
func (c *Client) EnableTwoFactor(ctx context.Context, token, otp string) error {
	path := "/api/users/enable-two-factor/verify-otp/" + url.PathEscape(otp)
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}

// DisableTwoFactor turns off two-factor authentication for the
// authenticated user, verified by the emailed code.
func (c *Client) DisableTwoFactor(ctx context.Context, token, otp string) error {
	path := "/api/users/disable-two-factor/verify-otp/" + url.PathEscape(otp)
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}
