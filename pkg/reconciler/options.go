package reconciler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	skipGrades map[string]bool
	logger     *zerolog.Logger
	clock      func() time.Time
}

func defaultOptions() *options {
	return &options{
		skipGrades: map[string]bool{},
		clock:      time.Now,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithSkipGrades sets grades whose fixtures could not be attributed to the
// roster date. Rows of these grades missing from the roster are blanked
// instead of being reported as removed.
func WithSkipGrades(grades ...string) Option {
	return func(o *options) error {
		for _, g := range grades {
			if g == "" {
				return &errors.ValidationError{
					Field:   "skip_grades",
					Message: "grade cannot be empty",
				}
			}
			o.skipGrades[g] = true
		}
		return nil
	}
}

// WithLogger sets the logger. By default the logger is taken from the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithClock sets the time source used to measure a pass.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = clock
		return nil
	}
}
