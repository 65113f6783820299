// Package session owns "who is logged in right now": the restored or
// freshly created session, its persistence, and the navigation side
// effects that follow every authentication transition.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/store"
	"github.com/elito/maintdesk/pkg/jwtx"
)

// Navigator receives the navigation side effects of authentication
// transitions: the role home after login, the login route after logout.
type Navigator interface {
	Navigate(domain.Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(domain.Route)

func (f NavigatorFunc) Navigate(r domain.Route) { f(r) }

// Manager is the single source of truth for authentication state. All
// session writes funnel through Login and Logout so in-memory state and
// the persisted store never diverge by construction.
type Manager struct {
	store  store.Store
	nav    Navigator
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state State
	token string

	readyOnce sync.Once
	ready     chan struct{}
}

func NewManager(st store.Store, nav Navigator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  st,
		nav:    nav,
		logger: logger,
		now:    time.Now,
		state:  State{Loading: true},
		ready:  make(chan struct{}),
	}
}

// Current returns a snapshot of the authentication state.
func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Token returns the session token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Ready is closed once the initial Restore pass has completed, on every
// outcome. Guards wait on it so a freshly started process never redirects
// to login before the persisted session has been read.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Restore loads the persisted session, called once at startup.
//
// Corrupted storage is self-healed: cleared and treated as logged out,
// never surfaced to the user. A token whose JWT has already expired gets
// the same treatment; presenting it to the API would only be rejected.
// Loading always ends, whatever path is taken.
func (m *Manager) Restore(ctx context.Context) {
	defer m.readyOnce.Do(func() { close(m.ready) })

	token, id, err := m.store.Load(ctx)
	switch {
	case err == nil:
		if jwtx.Expired(token, m.now()) {
			m.logger.Debug("persisted session expired, clearing")
			m.clearStore(ctx)
			m.dispatch(restoreFailed{})
			return
		}
		m.mu.Lock()
		m.token = token
		m.mu.Unlock()
		m.dispatch(restoreCompleted{user: id})

	case errors.Is(err, store.ErrNoSession):
		m.dispatch(restoreFailed{})

	case errors.Is(err, store.ErrCorruptedSession):
		m.logger.Warn("persisted session corrupted, clearing")
		m.clearStore(ctx)
		m.dispatch(restoreFailed{})

	default:
		// Treat unreadable storage like an absent session; the user can
		// log in again.
		m.logger.Error("failed to read session store", "error", err)
		m.dispatch(restoreFailed{})
	}
}

// Login persists the new session and flips in-memory state to
// authenticated, then navigates to the role home. It is the only writer
// of new sessions; the credential and step-up flows both funnel through
// it.
//
// A store failure is logged and swallowed: the in-memory transition
// proceeds so the user is not blocked by a broken local cache, at the
// cost that the next restart may disagree with the state just set.
func (m *Manager) Login(ctx context.Context, id domain.Identity, token string) {
	if err := m.store.Save(ctx, token, id); err != nil {
		m.logger.Error("failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.dispatch(loggedIn{user: id})

	m.logger.Info("logged in", "email", id.Email, "role", string(id.Role))
	m.nav.Navigate(domain.RoleHome(id.Role))
}

// Logout clears the persisted session, resets state and navigates to the
// login route. Safe to call when already logged out.
func (m *Manager) Logout(ctx context.Context) {
	m.clearStore(ctx)

	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	m.dispatch(loggedOut{})

	m.logger.Info("logged out")
	m.nav.Navigate(domain.RouteLogin)
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("failed to clear session store", "error", err)
	}
}

func (m *Manager) dispatch(e event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = apply(m.state, e)
}
