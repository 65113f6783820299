package session

import "github.com/elito/maintdesk/internal/domain"

// State is the in-memory authentication state. Loading is true from
// construction until the first restore pass completes; guards must not
// make decisions while it is set.
type State struct {
	User          *domain.Identity
	Authenticated bool
	Loading       bool
}

// event is a state transition input. Transitions are expressed as a pure
// reducer over a closed event set so they can be tested without a store,
// a network, or a Manager.
type event interface {
	isEvent()
}

type (
	// restoreCompleted carries a persisted identity found at startup.
	restoreCompleted struct{ user domain.Identity }

	// restoreFailed covers every unauthenticated restore outcome:
	// no session, corrupted session, expired token.
	restoreFailed struct{}

	loggedIn  struct{ user domain.Identity }
	loggedOut struct{}
)

func (restoreCompleted) isEvent() {}
func (restoreFailed) isEvent()    {}
func (loggedIn) isEvent()         {}
func (loggedOut) isEvent()        {}

// apply computes the next state. It never mutates its input.
func apply(s State, e event) State {
	switch e := e.(type) {
	case restoreCompleted:
		u := e.user
		return State{User: &u, Authenticated: true, Loading: false}
	case restoreFailed:
		return State{Loading: false}
	case loggedIn:
		u := e.user
		return State{User: &u, Authenticated: true, Loading: s.Loading}
	case loggedOut:
		return State{Loading: s.Loading}
	default:
		return s
	}
}
