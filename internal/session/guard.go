package session

import (
	"context"

	"github.com/elito/maintdesk/internal/domain"
)

// Decision is a route guard verdict: either render, or go somewhere else.
type Decision struct {
	Allow    bool
	Redirect domain.Route
}

// Guard gates access to protected surfaces by authentication state and,
// optionally, role. The checks here are advisory UX; real authorization
// is enforced by the API.
type Guard struct {
	mgr *Manager
}

func NewGuard(mgr *Manager) *Guard {
	return &Guard{mgr: mgr}
}

// Check waits for the initial restore to complete, then decides. An
// unauthenticated user is sent to login; an authenticated user of the
// wrong role is sent to their own role home rather than an error surface.
// required may be empty to gate on authentication alone.
func (g *Guard) Check(ctx context.Context, required domain.Role) (Decision, error) {
	if err := g.wait(ctx); err != nil {
		return Decision{}, err
	}

	st := g.mgr.Current()
	if !st.Authenticated || st.User == nil {
		return Decision{Redirect: domain.RouteLogin}, nil
	}
	if required != "" && st.User.Role != required {
		return Decision{Redirect: domain.RoleHome(st.User.Role)}, nil
	}
	return Decision{Allow: true}, nil
}

// Redirect is the root redirector: the route a visit to the application
// root lands on once loading completes. A session carrying an unknown
// role is treated as invalid and lands on login.
func (g *Guard) Redirect(ctx context.Context) (domain.Route, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}

	st := g.mgr.Current()
	if !st.Authenticated || st.User == nil || !st.User.Role.Known() {
		return domain.RouteLogin, nil
	}
	return domain.RoleHome(st.User.Role), nil
}

func (g *Guard) wait(ctx context.Context) error {
	select {
	case <-g.mgr.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
