package cmd

import (
	"context"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/analysis"
	"github.com/teniciavanaalten/simlog/internal/logbook"
	"github.com/teniciavanaalten/simlog/internal/metrics"
	"github.com/teniciavanaalten/simlog/internal/store"
	"github.com/teniciavanaalten/simlog/internal/ui/render"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the owner overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask the AI maintenance chief for a briefing",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		snap, err := logbook.NewService(s).Snapshot(ctx)
		if err != nil {
			return err
		}
		printAnalysis(ctx, cmd.OutOrStdout(), s, snap)
		return nil
	},
}

func runDashboard(cmd *cobra.Command) error {
	withAnalysis, _ := cmd.Flags().GetBool("analyze")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	snap, err := logbook.NewService(s).Snapshot(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lipgloss.Fprintln(out, render.Dashboard(metrics.Summarize(snap.Sessions, snap.Issues, snap.Maintenance)))
	if open := metrics.OpenIssueList(snap.Issues); len(open) > 0 {
		lipgloss.Fprintln(out)
		lipgloss.Fprintln(out, theme.Title.Render("Open squawks"))
		lipgloss.Fprintln(out, render.Issues(open))
	}
	if withAnalysis {
		lipgloss.Fprintln(out)
		printAnalysis(ctx, out, s, snap)
	}
	return nil
}

// printAnalysis writes the briefing, or the not-configured or fallback
// message in its place.
func printAnalysis(ctx context.Context, out io.Writer, s *store.Store, snap logbook.Snapshot) {
	a := analysis.NewAnalyzerFromEnv(ctx, s.EventRepo())
	brief, text := a.Report(ctx, snap.Issues, snap.Maintenance, snap.Sessions)
	switch {
	case brief != nil:
		lipgloss.Fprintln(out, render.Brief(*brief))
	case text == analysis.NotConfiguredMessage:
		lipgloss.Fprintln(out, render.Analysis(theme.Hint.Render(text)))
	default:
		lipgloss.Fprintln(out, render.Analysis(theme.Error.Render(text)))
	}
}

func init() {
	rootCmd.Flags().Bool("analyze", false, "Include the AI maintenance briefing")
	dashboardCmd.Flags().Bool("analyze", false, "Include the AI maintenance briefing")
}
