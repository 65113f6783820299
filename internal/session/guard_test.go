package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/elito/maintdesk/internal/domain"
)

func TestGuardCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("waits for restore", func(t *testing.T) {
		m, _ := newTestManager(&fakeStore{})
		g := NewGuard(m)

		shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		// Restore never ran: the guard must not decide.
		_, err := g.Check(shortCtx, "")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		m, _ := newTestManager(&fakeStore{})
		m.Restore(ctx)

		d, err := NewGuard(m).Check(ctx, "")
		require.NoError(t, err)
		require.False(t, d.Allow)
		require.Equal(t, domain.RouteLogin, d.Redirect)
	})

	t.Run("role match allows", func(t *testing.T) {
		id := domain.Identity{Email: "a@b.com", Role: domain.RoleAdmin}
		m, _ := newTestManager(&fakeStore{token: "T", identity: id, present: true})
		m.Restore(ctx)

		d, err := NewGuard(m).Check(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.True(t, d.Allow)
	})

	t.Run("role mismatch redirects to own home", func(t *testing.T) {
		id := domain.Identity{Email: "a@b.com", Role: domain.RoleTechnician}
		m, _ := newTestManager(&fakeStore{token: "T", identity: id, present: true})
		m.Restore(ctx)

		d, err := NewGuard(m).Check(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.False(t, d.Allow)
		require.Equal(t, domain.RouteTechnicianHome, d.Redirect)
	})

	t.Run("no required role gates on authentication only", func(t *testing.T) {
		id := domain.Identity{Email: "a@b.com", Role: domain.RoleUser}
		m, _ := newTestManager(&fakeStore{token: "T", identity: id, present: true})
		m.Restore(ctx)

		d, err := NewGuard(m).Check(ctx, "")
		require.NoError(t, err)
		require.True(t, d.Allow)
	})
}

func TestGuardRedirect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		store *fakeStore
		want  domain.Route
	}{
		{
			name:  "unauthenticated",
			store: &fakeStore{},
			want:  domain.RouteLogin,
		},
		{
			name: "admin",
			store: &fakeStore{
				token: "T", present: true,
				identity: domain.Identity{Email: "a@b.com", Role: domain.RoleAdmin},
			},
			want: domain.RouteAdminHome,
		},
		{
			name: "unknown role treated as invalid session",
			store: &fakeStore{
				token: "T", present: true,
				identity: domain.Identity{Email: "a@b.com", Role: domain.Role("MYSTERY")},
			},
			want: domain.RouteLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(tt.store)
			m.Restore(ctx)

			route, err := NewGuard(m).Redirect(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.want, route)
		})
	}
}
