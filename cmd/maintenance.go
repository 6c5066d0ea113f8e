package cmd

import (
	"context"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/logbook"
	"github.com/teniciavanaalten/simlog/internal/ui/render"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

var maintenanceCmd = &cobra.Command{
	Use:     "maintenance",
	Aliases: []string{"mx"},
	Short:   "Log and list maintenance work",
}

var maintenanceLogCmd = &cobra.Command{
	Use:   "log <action>",
	Short: "Log maintenance performed on the simulator",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := logbook.MaintenanceInput{}
		in.Technician, _ = cmd.Flags().GetString("technician")
		in.Hours, _ = cmd.Flags().GetFloat64("hours")
		related, _ := cmd.Flags().GetString("issue")
		if len(args) == 1 {
			in.Action = args[0]
		}

		return withService(cmd, func(svc *logbook.Service) error {
			ctx := context.Background()
			if related != "" {
				snap, err := svc.Snapshot(ctx)
				if err != nil {
					return err
				}
				if related, err = matchIssueID(snap.Issues, related); err != nil {
					return err
				}
			}
			in.RelatedIssueID = related

			m, err := svc.LogMaintenance(ctx, in)
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), theme.Success.Render(
				fmt.Sprintf("Logged %g hours of maintenance by %s.", m.HoursSpent, m.Technician)))
			return nil
		})
	},
}

var maintenanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List maintenance entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withService(cmd, func(svc *logbook.Service) error {
			snap, err := svc.Snapshot(context.Background())
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Maintenance(head(snap.Maintenance, limit)))
			return nil
		})
	},
}

func init() {
	f := maintenanceLogCmd.Flags()
	f.StringP("technician", "T", "", "Technician name")
	f.Float64P("hours", "H", 0, "Hours spent")
	f.String("issue", "", "Related issue id (logging work does not resolve it)")

	maintenanceListCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")

	maintenanceCmd.AddCommand(maintenanceLogCmd)
	maintenanceCmd.AddCommand(maintenanceListCmd)
}
