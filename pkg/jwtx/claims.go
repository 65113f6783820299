// Package jwtx provides client-side inspection of JWTs issued by the OCP
// backend. Tokens are treated as opaque bearer credentials; nothing here
// verifies a signature. Parsing exists only so the client can discard a
// persisted session whose token has already expired instead of presenting
// it to the API and being bounced.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed reports a token that is not a parseable JWT at all.
var ErrMalformed = errors.New("jwtx: malformed token")

// Claims is the subset of registered and OCP-private claims the client
// cares about. All fields are optional on the wire.
type Claims struct {
	Email     string
	Role      string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Peek decodes the claims of a JWT without verifying its signature.
func Peek(token string) (*Claims, error) {
	var raw struct {
		jwt.RegisteredClaims
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := &Claims{
		Email: raw.Email,
		Role:  raw.Role,
	}
	if c.Email == "" {
		c.Email = raw.Subject
	}
	if raw.ExpiresAt != nil {
		c.ExpiresAt = raw.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Malformed tokens are not reported as expired; callers that care should
// use Peek directly.
func Expired(token string, now time.Time) bool {
	c, err := Peek(token)
	if err != nil {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
