package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	status         string
	filterCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks ordered by due date, then priority.

Examples:
  tempo task list
  tempo task list --status pending
  tempo task list --category exam --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Status:   status,
			Category: filterCategory,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, tasks)
		}
		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}
		fmt.Fprintf(out, "Tasks (%d):\n", len(tasks))
		rule(out)
		for _, t := range tasks {
			printTask(out, t)
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (pending, in_progress, completed)")
	listCmd.Flags().StringVar(&filterCategory, "category", "", "filter by category")
}
