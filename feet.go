// Package feet creates and syncs fixture documents: xlsx workbooks with one
// worksheet per venue listing each court's matches in time order.
//
// A roster comes from the fixtures site (Scrape), from saved grade pages or
// a YAML snapshot (Load). Create writes a new document for it; Sync
// reconciles an existing document against it and records a change log.
package feet

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/constants"
	"github.com/agentstation/feet/pkg/export"
	"github.com/agentstation/feet/pkg/fixtures"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/roster"
	pkgsync "github.com/agentstation/feet/pkg/sync"
)

// Feet creates and syncs fixture documents
type Feet interface {
	// Create writes a new document for r and returns its path
	Create(ctx context.Context, r *roster.Roster) (string, error)

	// Sync reconciles document against r and saves it unless the sync fails or is a dry run
	Sync(ctx context.Context, document string, r *roster.Roster, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Scrape fetches the roster from the fixtures site and returns it with the skip-list
	Scrape(ctx context.Context) (*roster.Roster, []string, error)

	// Download saves every grade page into dir for later use with Load
	Download(ctx context.Context, dir string) ([]string, error)

	// Load reads a roster from a directory of saved grade pages or a YAML snapshot
	Load(ctx context.Context, path string) (*roster.Roster, []string, error)

	// OnPhase registers a callback for progress through an operation
	OnPhase(PhaseHook)
}

// feet is the internal implementation of the Feet interface
type feet struct {
	config *config
	hooks  *hooks
}

// New creates a new Feet instance with the given options
func New(opts ...Option) (Feet, error) {
	f := &feet{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := f.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	return f, nil
}

// OnPhase registers a callback for progress through an operation
func (f *feet) OnPhase(fn PhaseHook) {
	f.hooks.OnPhase(fn)
}

func (f *feet) logger(ctx context.Context) *zerolog.Logger {
	if f.config.logger != nil {
		return f.config.logger
	}
	return logging.FromContext(ctx)
}

// Create writes a new document for r into the configured output directory
func (f *feet) Create(ctx context.Context, r *roster.Roster) (string, error) {
	f.hooks.trigger(PhaseCreating, f.config.outputDir)

	path, err := export.Create(r, f.config.templatePath, f.config.outputDir)
	if err != nil {
		return "", err
	}

	f.logger(ctx).Info().
		Str("document", path).
		Str("template", f.config.templatePath).
		Int("matches", len(r.Matches())).
		Msg("Document created")
	f.hooks.trigger(PhaseDone, path)
	return path, nil
}

// Scrape fetches every Saturday grade page and builds the roster
func (f *feet) Scrape(ctx context.Context) (*roster.Roster, []string, error) {
	f.hooks.trigger(PhaseScraping, f.client().CompetitionsURL())

	ctx, cancel := scrapeContext(ctx)
	defer cancel()

	r, skip, err := f.client().Scrape(logging.WithLogger(ctx, f.logger(ctx)))
	if err != nil {
		return nil, nil, err
	}

	f.logger(ctx).Info().
		Time("date", r.Date).
		Int("grades", len(r.Rounds)).
		Strs("skipped", skip).
		Msg("Roster scraped")
	return r, skip, nil
}

// Download saves every Saturday grade page into dir
func (f *feet) Download(ctx context.Context, dir string) ([]string, error) {
	f.hooks.trigger(PhaseScraping, f.client().CompetitionsURL())

	ctx, cancel := scrapeContext(ctx)
	defer cancel()

	paths, err := f.client().Download(logging.WithLogger(ctx, f.logger(ctx)), dir)
	if err != nil {
		return nil, err
	}

	f.logger(ctx).Info().Str("dir", dir).Int("pages", len(paths)).Msg("Grade pages saved")
	f.hooks.trigger(PhaseDone, dir)
	return paths, nil
}

func (f *feet) client() *fixtures.Client {
	return fixtures.NewClient(
		fixtures.WithCompetitionsURL(f.config.competitionsURL),
		fixtures.WithHTTPClient(f.config.httpClient),
	)
}

// Load reads saved grade pages when path is a directory, otherwise a YAML roster snapshot
func (f *feet) Load(ctx context.Context, path string) (*roster.Roster, []string, error) {
	f.hooks.trigger(PhaseLoading, path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading roster: %w", err)
	}

	var (
		r    *roster.Roster
		skip []string
	)
	if info.IsDir() {
		r, skip, err = fixtures.LoadDir(path)
	} else {
		r, err = roster.LoadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}

	f.logger(ctx).Debug().
		Str("path", path).
		Int("grades", len(r.Rounds)).
		Strs("skipped", skip).
		Msg("Roster loaded")
	return r, skip, nil
}

// scrapeContext bounds a scrape that has no deadline of its own.
func scrapeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, constants.ScrapeTimeout)
}
