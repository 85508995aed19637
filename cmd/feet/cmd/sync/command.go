// Package sync provides the sync command.
package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/feet/cmd/feet/cmd/shared"
	"github.com/agentstation/feet/internal/cmd/application"
	"github.com/agentstation/feet/internal/cmd/output"
	pkgsync "github.com/agentstation/feet/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun      bool
	IgnoreDate  bool
	NoChangeLog bool
	Stats       bool
	Skip        []string
	Source      *shared.SourceFlags
}

// Options converts the flags into sync options.
func (f *Flags) Options(skip []string) []pkgsync.Option {
	return []pkgsync.Option{
		pkgsync.WithDryRun(f.DryRun),
		pkgsync.WithIgnoreDate(f.IgnoreDate),
		pkgsync.WithChangeLog(!f.NoChangeLog),
		pkgsync.WithSkipGrades(append(append([]string{}, f.Skip...), skip...)...),
	}
}

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync DOCUMENT",
		GroupID: "core",
		Short:   "Update an existing fixtures document to match the roster",
		Args:    cobra.ExactArgs(1),
		Long: `Sync reconciles an existing fixtures document against the roster in place.

Matches missing from the document are inserted, changed teams are
relabelled and matches that no longer exist are marked as forfeits. Grades
whose pages were for another date are left alone and noted.

The change log is printed and written to changes/<document>.txt. The
document is only saved after a complete pass; any error leaves it untouched.`,
		Example: `  feet sync "1st Jul 2023.xlsx"
  feet sync "1st Jul 2023.xlsx" --dry-run
  feet sync "1st Jul 2023.xlsx" --roster roster.yaml --skip 14B`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := shared.WithTimeout(cmd.Context(), app)
			defer cancel()

			f, err := app.Feet()
			if err != nil {
				return err
			}
			f.OnPhase(shared.Progress(app, cmd.ErrOrStderr()))

			r, skip, err := shared.LoadRoster(ctx, f, flags.Source)
			if err != nil {
				return err
			}
			shared.PrintSkipped(cmd.ErrOrStderr(), skip)

			result, err := f.Sync(ctx, args[0], r, flags.Options(skip)...)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), result.ChangeLog)
			if flags.Stats && result.Reconcile != nil {
				stats := output.StatsTable(result.Reconcile.Venues)
				if err := output.NewFormatter(output.FormatTable).Format(cmd.ErrOrStderr(), stats); err != nil {
					return err
				}
			}
			if !app.Quiet() {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show the change log without saving the document")
	cmd.Flags().BoolVar(&flags.IgnoreDate, "ignore-date", false, "sync even if the document is for a different date")
	cmd.Flags().BoolVar(&flags.NoChangeLog, "no-changelog", false, "do not write changes/<document>.txt")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "print per venue row counts after the pass")
	cmd.Flags().StringSliceVar(&flags.Skip, "skip", nil, "additional grades to leave unchecked")
	flags.Source = shared.AddSourceFlags(cmd)

	return cmd
}
