package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/logbook"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/ui/render"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

var issueCmd = &cobra.Command{
	Use:     "issue",
	Aliases: []string{"squawk"},
	Short:   "Report, list and resolve simulator issues",
}

var issueReportCmd = &cobra.Command{
	Use:   "report <description>",
	Short: "Report an equipment issue",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := logbook.IssueInput{}
		in.ReportedBy, _ = cmd.Flags().GetString("by")
		in.Component, _ = cmd.Flags().GetString("component")
		in.Severity, _ = cmd.Flags().GetString("severity")
		if len(args) == 1 {
			in.Description = args[0]
		}

		return withService(cmd, func(svc *logbook.Service) error {
			is, err := svc.ReportIssue(context.Background(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			lipgloss.Fprintln(out, theme.Success.Render(
				fmt.Sprintf("Reported issue %s against %s.", render.ShortID(is.ID), is.Component)))
			if is.Grounding() {
				lipgloss.Fprintln(out, theme.Warning.Render("Simulator is GROUNDED until this issue is resolved."))
			}
			return nil
		})
	},
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reported issues, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")

		var want *records.Status
		if status != "" {
			st, err := records.ParseStatus(status)
			if err != nil {
				return err
			}
			want = &st
		}

		return withService(cmd, func(svc *logbook.Service) error {
			snap, err := svc.Snapshot(context.Background())
			if err != nil {
				return err
			}
			var out []records.Issue
			for _, is := range snap.Issues {
				if want != nil && is.Status != *want {
					continue
				}
				out = append(out, is)
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Issues(head(out, limit)))
			return nil
		})
	},
}

var issuePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List open squawks awaiting maintenance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *logbook.Service) error {
			pending, err := svc.PendingSquawks(context.Background())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				lipgloss.Fprintln(cmd.OutOrStdout(), theme.Success.Render("No pending squawks."))
				return nil
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Issues(pending))
			return nil
		})
	},
}

var issueResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Mark an issue resolved and log the maintenance entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		technician, _ := cmd.Flags().GetString("technician")
		notes, _ := cmd.Flags().GetString("notes")

		return withService(cmd, func(svc *logbook.Service) error {
			ctx := context.Background()
			snap, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			id, err := matchIssueID(snap.Issues, args[0])
			if err != nil {
				return err
			}

			res, err := svc.ResolveIssue(ctx, logbook.ResolveInput{
				IssueID:    id,
				Technician: technician,
				Notes:      notes,
			})
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), theme.Success.Render(
				fmt.Sprintf("Resolved issue %s (%s). Logged %g hours of maintenance.",
					render.ShortID(res.Issue.ID), res.Issue.Component, res.Maintenance.HoursSpent)))
			return nil
		})
	},
}

// matchIssueID resolves an exact id or a unique id prefix as shown in
// the issue tables. Unmatched input is returned as is; blank input is
// rejected.
func matchIssueID(issues []records.Issue, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", errors.New("issue id is required")
	}
	var matches []string
	for _, is := range issues {
		if is.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(is.ID, arg) {
			matches = append(matches, is.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("issue id %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func severityHelp() string {
	labels := make([]string, 0, len(records.Severities()))
	for _, s := range records.Severities() {
		labels = append(labels, s.String())
	}
	return "Severity (" + strings.Join(labels, ", ") + ")"
}

func init() {
	f := issueReportCmd.Flags()
	f.String("by", "", "Reporting instructor (default "+records.UnknownReporter+")")
	f.StringP("component", "c", "", "Component ("+strings.Join(records.Components, ", ")+")")
	f.StringP("severity", "s", records.SeverityLow.String(), severityHelp())

	issueListCmd.Flags().IntP("limit", "n", 0, "Number of issues to show (0 for all)")
	issueListCmd.Flags().String("status", "", "Only show issues with this status (Open, In Progress, Resolved)")

	issueResolveCmd.Flags().String("technician", "", "Technician credited (default "+logbook.AdminTechnician+")")
	issueResolveCmd.Flags().String("notes", "", "Resolution notes")

	issueCmd.AddCommand(issueReportCmd)
	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issuePendingCmd)
	issueCmd.AddCommand(issueResolveCmd)
}
