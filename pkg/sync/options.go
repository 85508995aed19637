// Package sync provides options and results for syncing a fixture document with a roster.
package sync

import (
	"slices"
	"time"

	"github.com/agentstation/feet/pkg/errors"
)

// Options controls a single Feet.Sync call.
type Options struct {
	// Orchestration control
	DryRun  bool          // Reconcile and report without saving the document or change log
	Timeout time.Duration // Timeout for the entire sync (zero means none)

	// Reconciliation control
	SkipGrades []string // Grades whose gaps are blanked rather than logged as removals
	IgnoreDate bool     // Sync even when the document is for a different date than the roster

	// Output control
	ChangeLog bool // Write the change log next to the working directory's changes/ folder
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:     false,
		Timeout:    0,
		SkipGrades: nil,
		IgnoreDate: false,
		ChangeLog:  true,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	for _, grade := range s.SkipGrades {
		if grade == "" {
			return &errors.ValidationError{
				Field:   "SkipGrades",
				Value:   s.SkipGrades,
				Message: "skip grades cannot contain an empty grade",
			}
		}
	}

	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithSkipGrades adds grades to the skip-list.
func WithSkipGrades(grades ...string) Option {
	return func(opts *Options) {
		for _, g := range grades {
			if !slices.Contains(opts.SkipGrades, g) {
				opts.SkipGrades = append(opts.SkipGrades, g)
			}
		}
	}
}

// WithIgnoreDate configures whether a document for another date may be synced.
func WithIgnoreDate(ignore bool) Option {
	return func(opts *Options) {
		opts.IgnoreDate = ignore
	}
}

// WithChangeLog configures whether the change log file is written.
func WithChangeLog(write bool) Option {
	return func(opts *Options) {
		opts.ChangeLog = write
	}
}
