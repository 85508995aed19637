// Package roster provides the roster command.
package roster

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/feet/cmd/feet/cmd/shared"
	"github.com/agentstation/feet/internal/cmd/application"
	"github.com/agentstation/feet/internal/cmd/output"
	pkgroster "github.com/agentstation/feet/pkg/roster"
)

// Flags holds the roster command flags.
type Flags struct {
	Pages    string
	Save     string
	Download string
	Format   string
}

// NewCommand creates the roster command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "roster",
		GroupID: "core",
		Short:   "Fetch the roster and print or save it",
		Args:    cobra.NoArgs,
		Long: `Roster scrapes the fixtures site, or reads saved grade pages, and prints the
roster as YAML. The snapshot can be saved with --save and used later by
create and sync through --roster. --download saves the raw grade pages
for use with --pages instead. --format table or json prints the matches in
venue, court and time order instead of the snapshot. Without --format a
terminal gets the table and a pipe gets the YAML snapshot.`,
		Example: `  feet roster
  feet roster --save roster.yaml
  feet roster --pages ./pages --format table
  feet roster --download ./pages`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := output.ParseFormat(flags.Format); err != nil {
				return err
			}
			format := output.DetectFormat(flags.Format, output.FormatYAML)

			ctx, cancel := shared.WithTimeout(cmd.Context(), app)
			defer cancel()

			f, err := app.Feet()
			if err != nil {
				return err
			}
			f.OnPhase(shared.Progress(app, cmd.ErrOrStderr()))

			if flags.Download != "" {
				paths, err := f.Download(ctx, flags.Download)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			r, skip, err := shared.LoadRoster(ctx, f, &shared.SourceFlags{Pages: flags.Pages})
			if err != nil {
				return err
			}
			shared.PrintSkipped(cmd.ErrOrStderr(), skip)

			if flags.Save != "" {
				if err := pkgroster.SaveFile(flags.Save, r); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), flags.Save)
				return nil
			}

			switch format {
			case output.FormatTable:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.RosterTable(r))
			case output.FormatJSON:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.MatchRows(r))
			default:
				return pkgroster.Encode(cmd.OutOrStdout(), r)
			}
		},
	}

	cmd.Flags().StringVar(&flags.Pages, "pages", "", "read saved grade pages instead of the fixtures site")
	cmd.Flags().StringVar(&flags.Save, "save", "", "write the roster snapshot to a file")
	cmd.Flags().StringVar(&flags.Download, "download", "", "save the raw grade pages into a directory")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "output format: yaml, table or json")
	cmd.MarkFlagsMutuallyExclusive("pages", "download")
	cmd.MarkFlagsMutuallyExclusive("save", "download")

	return cmd
}
