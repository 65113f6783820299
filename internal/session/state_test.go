package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elito/maintdesk/internal/domain"
)

func TestApply(t *testing.T) {
	t.Parallel()

	initial := State{Loading: true}
	user := domain.Identity{Email: "a@b.com", Role: domain.RoleUser}

	t.Run("restore completed", func(t *testing.T) {
		next := apply(initial, restoreCompleted{user: user})
		require.True(t, next.Authenticated)
		require.False(t, next.Loading)
		require.Equal(t, user, *next.User)
	})

	t.Run("restore failed", func(t *testing.T) {
		next := apply(initial, restoreFailed{})
		require.False(t, next.Authenticated)
		require.False(t, next.Loading)
		require.Nil(t, next.User)
	})

	t.Run("logged in", func(t *testing.T) {
		next := apply(State{}, loggedIn{user: user})
		require.True(t, next.Authenticated)
		require.Equal(t, user, *next.User)
	})

	t.Run("logged out", func(t *testing.T) {
		authed := apply(State{}, loggedIn{user: user})
		next := apply(authed, loggedOut{})
		require.False(t, next.Authenticated)
		require.Nil(t, next.User)
	})

	t.Run("login before restore keeps loading", func(t *testing.T) {
		next := apply(initial, loggedIn{user: user})
		require.True(t, next.Loading)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		s := apply(State{}, loggedIn{user: user})
		_ = apply(s, loggedOut{})
		require.True(t, s.Authenticated)
		require.NotNil(t, s.User)
	})
}
