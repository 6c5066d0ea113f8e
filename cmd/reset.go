package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all sessions, issues and maintenance and restore the demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "This clears all logged data and restores the demo records. Continue? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Reset(context.Background()); err != nil {
			return err
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), theme.Success.Render("Data reset. Demo records restored."))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
