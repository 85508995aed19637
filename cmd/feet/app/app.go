// Package app provides the application context and dependency management
// for the feet CLI. It centralizes configuration, logging and the
// construction of Feet instances for commands.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet"
	"github.com/agentstation/feet/internal/cmd/application"
)

// App represents the feet application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	mu     sync.RWMutex
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from files and the environment,
// which can be replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = config

	logger := NewLogger(config)
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
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

func (a *App) setLogger(logger *zerolog.Logger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger = logger
}

// Timeout returns the configured command timeout.
func (a *App) Timeout() time.Duration {
	return a.config.Timeout
}

// Quiet reports whether progress output is suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Feet returns a new Feet instance configured from the application config.
// opts are applied last and override the configured values.
func (a *App) Feet(opts ...feet.Option) (feet.Feet, error) {
	f, err := feet.New(append(a.buildFeetOptions(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating feet: %w", err)
	}
	return f, nil
}

// buildFeetOptions converts the application config into feet options.
func (a *App) buildFeetOptions() []feet.Option {
	opts := []feet.Option{feet.WithLogger(a.Logger())}

	if a.config.Template != "" {
		opts = append(opts, feet.WithTemplate(a.config.Template))
	}
	if a.config.OutputDir != "" {
		opts = append(opts, feet.WithOutputDir(a.config.OutputDir))
	}
	if a.config.CompetitionsURL != "" {
		opts = append(opts, feet.WithCompetitionsURL(a.config.CompetitionsURL))
	}
	if len(a.config.SkipGrades) > 0 {
		opts = append(opts, feet.WithSkipGrades(a.config.SkipGrades...))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return fmt.Errorf("config cannot be nil")
		}
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
