package cmd

import (
	"context"
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/logbook"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/ui/render"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Log and list simulator sessions",
}

var sessionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed simulator session",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		in := logbook.SessionInput{}
		in.Instructor, _ = f.GetString("instructor")
		in.Simulator, _ = f.GetString("simulator")
		in.Date, _ = f.GetString("date")
		in.StartTime, _ = f.GetString("start")
		in.EndTime, _ = f.GetString("end")
		in.SessionType, _ = f.GetString("type")
		in.DowntimeMinutes, _ = f.GetInt("downtime")
		in.SessionLost, _ = f.GetBool("lost")
		in.LostReason, _ = f.GetString("lost-reason")
		in.Notes, _ = f.GetString("notes")
		in.Declarations.StartupChecklist, _ = f.GetBool("startup-checklist")
		in.Declarations.SafetyBriefing, _ = f.GetBool("safety-briefing")
		in.Declarations.ShutdownChecklist, _ = f.GetBool("shutdown-checklist")
		if in.Date == "" {
			in.Date = records.DateOnly(time.Now())
		}

		return withService(cmd, func(svc *logbook.Service) error {
			s, err := svc.LogSession(context.Background(), in)
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), theme.Success.Render(
				fmt.Sprintf("Logged %s: %g hours.", s.SessionName, s.DurationHours)))
			return nil
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		instructor, _ := cmd.Flags().GetString("instructor")

		return withService(cmd, func(svc *logbook.Service) error {
			snap, err := svc.Snapshot(context.Background())
			if err != nil {
				return err
			}
			var out []records.Session
			for _, s := range snap.Sessions {
				if instructor != "" && s.InstructorName != instructor {
					continue
				}
				out = append(out, s)
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Sessions(head(out, limit)))
			return nil
		})
	},
}

// head returns the first n items, or all of them when n <= 0.
func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func init() {
	f := sessionLogCmd.Flags()
	f.StringP("instructor", "i", "", "Instructor name")
	f.String("simulator", records.DefaultSimulator, "Simulator used")
	f.StringP("date", "d", "", "Session date, YYYY-MM-DD (default today)")
	f.String("start", "", "Start time, HH:mm")
	f.String("end", "", "End time, HH:mm (may be past midnight)")
	f.StringP("type", "t", "", "Session type (Certified, Non-Certified)")
	f.Int("downtime", 0, "Minutes of downtime during the session")
	f.Bool("lost", false, "The session was lost to a fault")
	f.String("lost-reason", "", "Why the session was lost (required with --lost)")
	f.String("notes", "", "Free-form notes")
	f.Bool("startup-checklist", false, "Confirm the startup checklist was completed")
	f.Bool("safety-briefing", false, "Confirm the safety briefing was given")
	f.Bool("shutdown-checklist", false, "Confirm the shutdown checklist was completed")

	sessionListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show (0 for all)")
	sessionListCmd.Flags().StringP("instructor", "i", "", "Only show sessions by this instructor")

	sessionCmd.AddCommand(sessionLogCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
