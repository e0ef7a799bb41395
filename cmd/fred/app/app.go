// Package app provides the application context and dependency management
// for the fred CLI: configuration, logging, the endpoint registry and the
// lazily built FRED client.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/internal/appcontext"
	"github.com/arbaizam/fredclient/internal/config"
	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
)

// App represents the fred application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  Flags
	logger *zerolog.Logger
	out    io.Writer

	mu       sync.Mutex
	registry *endpoints.Registry
	client   *fredclient.Client
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, or "" for auto-detection.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Registry returns the endpoint registry, loading a custom file once if
// one is configured.
func (a *App) Registry() (*endpoints.Registry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registryLocked()
}

func (a *App) registryLocked() (*endpoints.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}

	path := config.EndpointsFile()
	if path == "" {
		a.registry = endpoints.Default()
		return a.registry, nil
	}

	reg, err := endpoints.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("file", path).
		Int("operations", reg.Len()).
		Msg("Loaded custom endpoint registry")
	a.registry = reg
	return reg, nil
}

// Client returns the FRED client, creating it on first use.
func (a *App) Client() (*fredclient.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	apiKey, err := config.APIKey()
	if err != nil {
		return nil, err
	}
	if err := config.CheckAPIKeyFormat(apiKey); err != nil {
		a.logger.Warn().Err(err).Msg("API key does not look like a FRED key")
	}

	timeout, err := config.Timeout()
	if err != nil {
		return nil, err
	}

	reg, err := a.registryLocked()
	if err != nil {
		return nil, err
	}

	client, err := fredclient.New(apiKey,
		fredclient.WithBaseURL(config.BaseURL()),
		fredclient.WithTimeout(timeout),
		fredclient.WithRegistry(reg),
		fredclient.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.NewConfigError("client", "cannot create FRED client", err)
	}

	a.client = client
	return client, nil
}

// Shutdown drops the cached client. The client runs no goroutines, so
// there is nothing else to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.client = nil
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput redirects command output (useful for testing).
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithClient sets a prebuilt client (useful for testing).
func WithClient(client *fredclient.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}

// WithRegistry sets the endpoint registry (useful for testing).
func WithRegistry(registry *endpoints.Registry) Option {
	return func(a *App) error {
		a.registry = registry
		return nil
	}
}
