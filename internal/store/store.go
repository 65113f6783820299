// Package store defines durable persistence for the authenticated session.
//
// A session is two entries that live and die together: the bearer token and
// the serialized user identity. The contract is "present together or absent
// together": a store holding one without the other is corrupted and callers
// are expected to self-heal by clearing it.
package store

import (
	"context"
	"errors"

	"github.com/elito/maintdesk/internal/domain"
)

var (
	// ErrNoSession reports that no session is persisted. This is the
	// normal logged-out state, not a failure.
	ErrNoSession = errors.New("store: no session")

	// ErrCorruptedSession reports persisted session data that cannot be
	// trusted: a token without an identity, an identity without a token,
	// or an identity that does not parse.
	ErrCorruptedSession = errors.New("store: corrupted session")
)

// Store persists one session across process restarts.
type Store interface {
	// Save writes the token and identity together. It overwrites any
	// previously persisted session.
	Save(ctx context.Context, token string, id domain.Identity) error

	// Load reads the persisted session. It returns ErrNoSession when the
	// store is empty and ErrCorruptedSession when the stored data fails
	// the present-together invariant or does not parse.
	Load(ctx context.Context) (string, domain.Identity, error)

	// Clear removes the persisted session. Clearing an empty store is a
	// no-op, not an error.
	Clear(ctx context.Context) error

	Close() error
}
