// Package application provides the application interface for feet commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with Mock.
package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet"
)

// Application provides what commands need from the CLI application.
type Application interface {
	// Feet returns a Feet instance configured from the application config.
	// opts are applied after the configured options and take precedence.
	Feet(opts ...feet.Option) (feet.Feet, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// Timeout bounds a single command run (zero means none).
	Timeout() time.Duration

	// Quiet reports whether progress output is suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
