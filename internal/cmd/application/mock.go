package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    FeetFunc: func(opts ...feet.Option) (feet.Feet, error) {
//	        return feet.New(append(opts, feet.WithOutputDir(dir))...)
//	    },
//	}
//	cmd := create.NewCommand(mock)
type Mock struct {
	FeetFunc    func(opts ...feet.Option) (feet.Feet, error)
	LoggerFunc  func() *zerolog.Logger
	TimeoutFunc func() time.Duration
	QuietFunc   func() bool
	VersionFunc func() string
	CommitFunc  func() string
	DateFunc    func() string
	BuiltByFunc func() string
}

// Feet returns a Feet instance using the mock function or feet.New.
func (m *Mock) Feet(opts ...feet.Option) (feet.Feet, error) {
	if m.FeetFunc != nil {
		return m.FeetFunc(opts...)
	}
	return feet.New(append([]feet.Option{feet.WithLogger(m.Logger())}, opts...)...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// Timeout returns the timeout using the mock function or zero.
func (m *Mock) Timeout() time.Duration {
	if m.TimeoutFunc != nil {
		return m.TimeoutFunc()
	}
	return 0
}

// Quiet returns quiet using the mock function or true.
func (m *Mock) Quiet() bool {
	if m.QuietFunc != nil {
		return m.QuietFunc()
	}
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

var _ Application = (*Mock)(nil)
