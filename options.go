package feet

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/errors"
)

// Option is a function that configures a Feet instance
type Option func(*config) error

// config holds the settings shared by every operation of a Feet instance.
type config struct {
	templatePath    string
	outputDir       string
	skipGrades      []string
	logger          *zerolog.Logger
	competitionsURL string
	httpClient      *http.Client
}

func defaultConfig() *config {
	return &config{outputDir: "."}
}

// options applies the given options to the Feet instance.
func (f *feet) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(f.config); err != nil {
			return err
		}
	}
	return nil
}

// WithTemplate configures the document that Create starts from.
// Without a template Create starts from a blank workbook.
func WithTemplate(path string) Option {
	return func(c *config) error {
		c.templatePath = path
		return nil
	}
}

// WithOutputDir configures the directory Create saves documents into.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("outputDir", dir, "cannot be empty")
		}
		c.outputDir = dir
		return nil
	}
}

// WithSkipGrades configures grades that every Sync treats as skipped.
func WithSkipGrades(grades ...string) Option {
	return func(c *config) error {
		for _, g := range grades {
			if g == "" {
				return errors.NewValidationError("skipGrades", grades, "cannot contain an empty grade")
			}
		}
		c.skipGrades = append(c.skipGrades, grades...)
		return nil
	}
}

// WithLogger configures the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithCompetitionsURL configures the page Scrape discovers grade pages from.
func WithCompetitionsURL(url string) Option {
	return func(c *config) error {
		c.competitionsURL = url
		return nil
	}
}

// WithHTTPClient configures the HTTP client Scrape uses.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}
