// Package shared holds helpers used by several feet commands.
package shared

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/feet"
	"github.com/agentstation/feet/internal/cmd/application"
	"github.com/agentstation/feet/pkg/roster"
)

// SourceFlags selects where a command reads its roster from.
type SourceFlags struct {
	Roster string // YAML roster snapshot
	Pages  string // Directory of saved grade pages
}

// AddSourceFlags registers --roster and --pages on cmd.
func AddSourceFlags(cmd *cobra.Command) *SourceFlags {
	flags := &SourceFlags{}
	cmd.Flags().StringVar(&flags.Roster, "roster", "", "read the roster from a YAML snapshot instead of the fixtures site")
	cmd.Flags().StringVar(&flags.Pages, "pages", "", "read the roster from saved grade pages instead of the fixtures site")
	cmd.MarkFlagsMutuallyExclusive("roster", "pages")
	return flags
}

// LoadRoster reads the roster selected by flags, scraping the fixtures site
// when neither flag is set. It returns the roster and its skip-list.
func LoadRoster(ctx context.Context, f feet.Feet, flags *SourceFlags) (*roster.Roster, []string, error) {
	switch {
	case flags.Roster != "":
		return f.Load(ctx, flags.Roster)
	case flags.Pages != "":
		return f.Load(ctx, flags.Pages)
	default:
		return f.Scrape(ctx)
	}
}

// Progress returns a phase hook printing each phase to w, or nil when app is quiet.
func Progress(app application.Application, w io.Writer) feet.PhaseHook {
	if app.Quiet() {
		return nil
	}
	return func(phase feet.Phase, detail string) {
		if detail == "" {
			fmt.Fprintf(w, "%s\n", phase)
			return
		}
		fmt.Fprintf(w, "%s %s\n", phase, detail)
	}
}

// WithTimeout applies the application's command timeout to ctx.
func WithTimeout(ctx context.Context, app application.Application) (context.Context, context.CancelFunc) {
	if d := app.Timeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// PrintSkipped reports grades left out of the roster to w.
func PrintSkipped(w io.Writer, skip []string) {
	if len(skip) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped grades (different date): %s\n", strings.Join(skip, ", "))
}
