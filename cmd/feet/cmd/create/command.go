// Package create provides the create command.
package create

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/feet"
	"github.com/agentstation/feet/cmd/feet/cmd/shared"
	"github.com/agentstation/feet/internal/cmd/application"
)

// Flags holds the create command flags.
type Flags struct {
	Template  string
	OutputDir string
	Source    *shared.SourceFlags
}

// NewCommand creates the create command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "create",
		GroupID: "core",
		Short:   "Create a fixtures document for the next round",
		Args:    cobra.NoArgs,
		Long: `Create writes a new fixtures document from the roster. Each venue worksheet
lists a header per court followed by that court's matches in time order.

The document is named after the round date, e.g. "1st Jul 2023.xlsx", and
saved in the output directory. A template document supplies the worksheet
layout; without one a blank workbook is used.`,
		Example: `  feet create --template template.xlsx --output ./fixtures
  feet create --roster roster.yaml
  feet create --pages ./pages -o ./fixtures`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := shared.WithTimeout(cmd.Context(), app)
			defer cancel()

			var opts []feet.Option
			if flags.Template != "" {
				opts = append(opts, feet.WithTemplate(flags.Template))
			}
			if flags.OutputDir != "" {
				opts = append(opts, feet.WithOutputDir(flags.OutputDir))
			}
			f, err := app.Feet(opts...)
			if err != nil {
				return err
			}
			f.OnPhase(shared.Progress(app, cmd.ErrOrStderr()))

			r, skip, err := shared.LoadRoster(ctx, f, flags.Source)
			if err != nil {
				return err
			}
			shared.PrintSkipped(cmd.ErrOrStderr(), skip)

			path, err := f.Create(ctx, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Template, "template", "t", "", "template document (default from FEET_TEMPLATE)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "output directory (default from FEET_OUTPUT_DIR or .)")
	flags.Source = shared.AddSourceFlags(cmd)

	return cmd
}
