package maintapi

import (
	"context"
	"net/http"
	"net/url"
)

// VerifyTwoFactor redeems a step-up challenge with a one-time code.
// The code travels in the path and the challenge reference in the query,
// matching the backend's route shape.
//
// A 2xx response without a token is reported as ErrMissingToken: the
// attempt failed and the challenge remains redeemable.
func (c *Client) VerifyTwoFactor(ctx context.Context, code, sessionID string) (*TwoFactorResult, error) {
	path := "/auth/two-factor/otp/" + url.PathEscape(code) +
		"?id=" + url.QueryEscape(sessionID)

	var resp twoFactorResponse
	if err := c.doJSON(ctx, http.MethodPost, path, "", nil, &resp); err != nil {
		return nil, err
	}

	if resp.JWT == "" {
		return nil, ErrMissingToken
	}
	return &TwoFactorResult{Token: resp.JWT, Role: resp.Role}, nil
}

// ResendTwoFactor asks the server to re-issue the one-time code for an
// outstanding challenge. The challenge itself is unchanged; this only
// triggers delivery of a fresh code. Unlike verification, this endpoint
// names its query parameter sessionId.
func (c *Client) ResendTwoFactor(ctx context.Context, sessionID string) error {
	path := "/auth/two-factor/resend-otp?sessionId=" + url.QueryEscape(sessionID)
	return c.doJSON(ctx, http.MethodPost, path, "", nil, nil)
}
