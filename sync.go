package feet

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/export"
	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/reconciler"
	"github.com/agentstation/feet/pkg/roster"
	pkgsync "github.com/agentstation/feet/pkg/sync"
)

// Sync reconciles document against r. The document is saved only after a
// complete pass; on any error it is closed untouched.
func (f *feet) Sync(ctx context.Context, document string, r *roster.Roster, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout and document logger
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {} // No-op cancel if no timeout
	}
	defer cancel()
	ctx = logging.WithLogger(ctx, f.logger(ctx))
	ctx = logging.WithDocument(ctx, document)
	logger := logging.FromContext(ctx)

	// Step 3: Open the document
	f.hooks.trigger(PhaseOpening, document)
	wb, err := grid.Open(document)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := wb.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Closing document failed")
		}
	}()

	// Step 4: Check the document is for the roster's date
	if err := checkDate(wb, r, options.IgnoreDate); err != nil {
		return nil, err
	}

	// Step 5: Reconcile
	rec, err := reconciler.New(
		reconciler.WithSkipGrades(append(append([]string{}, f.config.skipGrades...), options.SkipGrades...)...),
		reconciler.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	f.hooks.trigger(PhaseReconciling, document)
	reconciled, err := rec.Reconcile(ctx, wb, r)
	if err != nil {
		return nil, fmt.Errorf("syncing %s: %w", document, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := pkgsync.NewResult(document, reconciled, options.DryRun)

	// Step 6: Save unless dry run
	if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no changes applied")
		f.hooks.trigger(PhaseDone, document)
		return result, nil
	}

	f.hooks.trigger(PhaseSaving, document)
	if err := wb.Save(); err != nil {
		return nil, err
	}
	result.Saved = true

	// Step 7: Write the change log
	if options.ChangeLog {
		f.hooks.trigger(PhaseChangeLog, export.ChangeLogPath(document))
		path, err := export.WriteChangeLog(document, result.ChangeLog)
		if err != nil {
			return nil, err
		}
		result.ChangeLogPath = path
	}

	logger.Info().
		Str("change_log", result.ChangeLogPath).
		Msg(result.Summary())
	f.hooks.trigger(PhaseDone, document)
	return result, nil
}

// checkDate compares the document's date cell with the roster date by calendar day.
func checkDate(wb *grid.Workbook, r *roster.Roster, ignore bool) error {
	if ignore {
		return nil
	}
	date, err := wb.Date()
	if err != nil {
		return err
	}
	if !sameDay(date, r.Date) {
		return errors.NewValidationError("date", date.Format(time.DateOnly),
			fmt.Sprintf("document is for %s but the roster is for %s", date.Format(time.DateOnly), r.Date.Format(time.DateOnly)))
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
