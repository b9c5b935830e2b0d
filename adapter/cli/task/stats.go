package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task and study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		stats, err := app.GetStatsHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, stats)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tasks:        %d\n", stats.TotalTasks)
		fmt.Fprintf(out, "  pending:     %d\n", stats.PendingTasks)
		fmt.Fprintf(out, "  in progress: %d\n", stats.InProgressTasks)
		fmt.Fprintf(out, "  completed:   %d\n", stats.CompletedTasks)
		fmt.Fprintf(out, "  overdue:     %d\n", stats.OverdueTasks)
		fmt.Fprintf(out, "Study hours:  %.1f\n", stats.TotalStudyHours)
		return nil
	},
}
