// Package reconciler aligns a fixture roster against an existing document
// and mutates the document in place: missing matches are inserted, changed
// teams are relabelled and matches that no longer exist are marked as
// forfeits. Every change is recorded in a changelog.Log.
//
// A pass walks each venue worksheet once, alongside the roster's matches for
// that venue grouped by court and ordered by time. It relies on the document
// listing court blocks in ascending court order and match rows in ascending
// time order within a block.
package reconciler

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/roster"
)

// Reconciler reconciles a roster into a document.
type Reconciler interface {
	// Reconcile mutates wb to list the matches of r. On error the workbook
	// is left part way through the pass and must not be saved.
	Reconcile(ctx context.Context, wb *grid.Workbook, r *roster.Roster) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	options *options
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{options: options}, nil
}

// Reconcile runs one pass over every venue in declaration order.
func (r *reconciler) Reconcile(ctx context.Context, wb *grid.Workbook, rst *roster.Roster) (*Result, error) {
	if wb == nil {
		return nil, errors.NewValidationError("workbook", nil, "cannot be nil")
	}
	if rst == nil {
		return nil, errors.NewValidationError("roster", nil, "cannot be nil")
	}
	if err := rst.Validate(); err != nil {
		return nil, err
	}

	logger := r.logger(ctx)
	result := NewResult()
	result.Metadata.StartTime = r.options.clock()
	result.Metadata.Date = rst.Date
	result.Metadata.SkipGrades = slices.Sorted(maps.Keys(r.options.skipGrades))

	grouped := rst.Grouped()
	for _, venue := range roster.Venues() {
		sheet, err := wb.Sheet(venue)
		if err != nil {
			return nil, err
		}

		venueLogger := logger.With().Str("venue", venue.String()).Logger()
		p := newPass(sheet, grouped[venue], r.options.skipGrades, result.Changes, &venueLogger)
		if err := p.run(); err != nil {
			return nil, fmt.Errorf("reconciling %s: %w", venue, err)
		}

		venueLogger.Debug().
			Int("inserted", p.stats.RowsInserted).
			Int("retired", p.stats.RowsRetired).
			Int("blanked", p.stats.RowsBlanked).
			Int("halves_updated", p.stats.HalvesUpdated).
			Msg("Reconciled venue")
		result.Venues = append(result.Venues, p.stats)
	}

	if err := result.Changes.Notes(result.Metadata.SkipGrades...); err != nil {
		return nil, err
	}
	if err := wb.NormalizeHeights(); err != nil {
		return nil, fmt.Errorf("normalizing row heights: %w", err)
	}
	wb.SetActive(0)

	result.Metadata.EndTime = r.options.clock()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)

	summary := result.Changes.Summary()
	logger.Info().
		Int("moved", summary.Moved).
		Int("added", summary.Added).
		Int("removed", summary.Removed).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation completed")

	return result, nil
}

func (r *reconciler) logger(ctx context.Context) *zerolog.Logger {
	if r.options.logger != nil {
		return r.options.logger
	}
	return logging.FromContext(ctx)
}
