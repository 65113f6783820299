package domain

// Identity is the minimal client-side projection of the authenticated
// principal, persisted alongside the session token. It is deliberately not
// the full server profile; screens that need more fetch it themselves.
type Identity struct {
	Email            string `json:"email"`
	Role             Role   `json:"role"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled,omitempty"`
}
