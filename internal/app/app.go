// Package app wires the maintctl application: configuration, logging, the
// persisted session store, the API client and the session manager.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/elito/maintdesk/internal/session"
	"github.com/elito/maintdesk/internal/store/sqlite"
	"github.com/elito/maintdesk/pkg/maintapi"
	"github.com/elito/maintdesk/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates maintctl with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store   *sqlite.Store
	client  *maintapi.Client
	manager *session.Manager
	guard   *session.Guard
}

// New creates an Application with all dependencies initialized. nav
// receives the navigation side effects of login and logout.
func New(cfg Config, nav session.Navigator) (*Application, error) {
	logger := slogx.New(slogx.Config{
		Service: "maintctl",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if dir := filepath.Dir(cfg.SessionFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	st, err := sqlite.NewStore(cfg.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := maintapi.NewClient(cfg.APIBaseURL)
	client.HTTPClient.Timeout = cfg.HTTPTimeout
	client.Logger = logger

	manager := session.NewManager(st, nav, logger)

	return &Application{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		client:  client,
		manager: manager,
		guard:   session.NewGuard(manager),
	}, nil
}

func (a *Application) Close() error { return a.store.Close() }

func (a *Application) Logger() *slog.Logger      { return a.logger }
func (a *Application) Client() *maintapi.Client  { return a.client }
func (a *Application) Manager() *session.Manager { return a.manager }
func (a *Application) Guard() *session.Guard     { return a.guard }
