// Package constants provides shared constants used throughout the feet codebase.
// This includes timeouts, retry settings, file permissions and paths
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// FetchTimeout is the timeout for a single request to the fixtures site
	FetchTimeout = 30 * time.Second

	// ScrapeTimeout bounds a full scrape of every grade page
	ScrapeTimeout = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxRetries is the maximum number of attempts for a failed page fetch
	MaxRetries = 2

	// MaxPageSize is the largest grade page body read from the network (4 MB)
	MaxPageSize = 4 * 1024 * 1024
)

// Path constants
const (
	// ChangesDir is the directory, relative to the working directory,
	// that receives one change log per synced document
	ChangesDir = "changes"

	// ChangeLogExt is the extension of change log files
	ChangeLogExt = ".txt"

	// DocumentExt is the extension of fixture documents
	DocumentExt = ".xlsx"

	// DefaultConfigName is the config file name looked up in $HOME
	DefaultConfigName = ".feet"
)

// Fixture site constants
const (
	// SiteDomain is the origin that relative links on the fixtures site resolve against
	SiteDomain = "https://www.playhq.com"

	// CompetitionsURL lists the association's competitions
	CompetitionsURL = SiteDomain + "/basketball-victoria/org/southern-basketball-association/e1cbc3e3"

	// UserAgent identifies feet to the fixtures site
	UserAgent = "feet/1.0 (+https://github.com/agentstation/feet)"
)
