package maintapi

// ============================================================================
// Wire Types (used for JSON unmarshaling)
// ============================================================================

// signInResponse is the raw POST /auth/signin body. The endpoint overloads
// one shape for both outcomes; SignIn discriminates it into SignInSuccess
// or StepUpRequiredError before anything downstream sees it.
type signInResponse struct {
	Status               bool   `json:"status"`
	JWT                  string `json:"jwt"`
	Role                 string `json:"role"`
	TwoFactorAuthEnabled bool   `json:"twoFactorAuthEnabled"`
	Session              string `json:"session"`
	Message              string `json:"message"`
}

// twoFactorResponse is the raw body of the OTP verification endpoint.
type twoFactorResponse struct {
	JWT  string `json:"jwt"`
	Role string `json:"role"`
}

// resetOTPResponse is the raw body of the reset-password send-otp endpoint.
type resetOTPResponse struct {
	Session string `json:"session"`
	JWT     string `json:"jwt"`
}

// profileResponse is the subset of GET /api/users/profile the client reads.
type profileResponse struct {
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Role          string `json:"role"`
	TwoFactorAuth struct {
		Enabled bool `json:"enabled"`
	} `json:"twoFactorAuth"`
}

// ============================================================================
// Result Types
// ============================================================================

// SignInSuccess is a direct credential sign-in: a session token was granted
// without a second factor.
type SignInSuccess struct {
	// Token is the session JWT, opaque to the client.
	Token string

	// Role is the authenticated principal's role as reported by the server.
	Role string
}

// TwoFactorResult is a successful OTP verification.
type TwoFactorResult struct {
	Token string

	// Role is optional; when empty the caller falls back to the role
	// carried on the original challenge.
	Role string
}

// ResetChallenge is the server-issued state for one password-reset
// completion: an opaque session reference and a short-lived JWT scoped to
// the reset (not a login session).
type ResetChallenge struct {
	SessionID  string
	ResetToken string
}

// Profile is the client-side projection of the authenticated user's
// server profile.
type Profile struct {
	Email            string
	FullName         string
	Role             string
	TwoFactorEnabled bool
}
